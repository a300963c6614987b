package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/happyavatar/internal/image"
	"github.com/jmylchreest/happyavatar/internal/sentiment"
)

type fixOptions struct {
	output string
	swap   bool
}

func newFixCmd(global *globalOptions) *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix <image>",
		Short: "Recolour a sad avatar and write the result as PNG",
		Long: `Analyse an avatar and, if its palette is sad, replace the sad colours with
randomly chosen happy ones. The circular mask is preserved: pixels outside the
circle are written as transparent.

The result is always written, even when no colour needed replacing.

Examples:
  # Writes avatar_happy.png next to the input
  happyavatar fix avatar.png

  # Reproducible replacement colours
  happyavatar fix --seed 42 -o out.png avatar.png

  # Also recolour larger sad palettes
  happyavatar fix --swap avatar.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PNG path (default <name>_happy.png)")
	cmd.Flags().BoolVar(&opts.swap, "swap", false, "recolour any sad palette that was not reduced")

	return cmd
}

func runFix(cmd *cobra.Command, global *globalOptions, opts *fixOptions, path string) error {
	cfg, logger, err := global.setup(cmd)
	if err != nil {
		return err
	}

	img, err := loadAvatar(path, cfg, logger)
	if err != nil {
		return err
	}

	analyser, err := newAnalyser(cfg, logger)
	if err != nil {
		return err
	}

	var result sentiment.Result
	if opts.swap {
		result, err = analyser.HappyOrSwap(img)
	} else {
		result, err = analyser.GetPaletteSentiment(img)
	}
	if err != nil {
		return fmt.Errorf("failed to fix avatar: %w", err)
	}

	output := opts.output
	if output == "" {
		output = image.DefaultOutputPath(path)
	}
	if err := image.SavePNG(output, img); err != nil {
		return err
	}
	logger.Info("avatar written", "path", output, "happy", result.IsHappy, "remapped", result.Remapped)

	out := cmd.OutOrStdout()
	switch {
	case result.Remapped:
		fmt.Fprintf(out, "Recoloured %d pixels (%d colours) -> %s\n", result.Recoloured, len(result.Remap), output)
	case result.IsHappy:
		fmt.Fprintf(out, "Palette is already happy -> %s\n", output)
	default:
		fmt.Fprintf(out, "Palette is sad but was left unchanged -> %s\n", output)
	}
	return nil
}
