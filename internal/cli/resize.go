package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/happyavatar/internal/image"
)

func newResizeCmd(global *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resize <image>",
		Short: "Normalise an image to the avatar canvas",
		Long: `Convert an image to RGBA and resize it to the configured square canvas
without analysing it. Use --size to pick a different canvas.

Examples:
  happyavatar resize photo.jpg
  happyavatar resize --size 256 -o small.png photo.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup(cmd)
			if err != nil {
				return err
			}

			img, err := loadAvatar(args[0], cfg, logger)
			if err != nil {
				return err
			}

			if output == "" {
				output = resizedOutputPath(args[0])
			}
			if err := image.SavePNG(output, img); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Resized to %dx%d -> %s\n", cfg.CanvasSize, cfg.CanvasSize, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG path (default <name>_resized.png)")

	return cmd
}

func resizedOutputPath(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_resized.png"
}
