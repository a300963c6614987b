package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/happyavatar/internal/colour"
	"github.com/jmylchreest/happyavatar/internal/sentiment"
)

type analyseOptions struct {
	format    string
	preview   bool
	noPreview bool
}

func newAnalyseCmd(global *globalOptions) *cobra.Command {
	opts := &analyseOptions{}

	cmd := &cobra.Command{
		Use:     "analyse <image>",
		Aliases: []string{"analyze"},
		Short:   "Report the palette sentiment of an avatar",
		Long: `Analyse the colour palette of a circular avatar without writing any file.

The image is normalised to an RGBA canvas of the configured size, the colours
inside the circle are collected and classified, and the verdict is printed.

Supported image formats: PNG, JPEG, GIF, WebP

Examples:
  # Print the verdict and the palette as hex codes
  happyavatar analyse avatar.png

  # Per-colour verdicts as a table
  happyavatar analyse --format table avatar.png

  # Machine readable output
  happyavatar analyse --format json avatar.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyse(cmd, global, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "hex", "output format (hex, rgb, table, json)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews (default when stdout is a terminal)")
	cmd.Flags().BoolVar(&opts.noPreview, "no-preview", false, "never show colour previews")

	return cmd
}

func runAnalyse(cmd *cobra.Command, global *globalOptions, opts *analyseOptions, path string) error {
	switch opts.format {
	case "hex", "rgb", "table", "json":
	default:
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, table, json)", opts.format)
	}

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
	result, err := analyser.GetPaletteSentiment(img)
	if err != nil {
		return fmt.Errorf("failed to analyse palette: %w", err)
	}

	out := cmd.OutOrStdout()
	classifier := colour.Classifier{LegacyGating: cfg.LegacyGating}

	if opts.format == "json" {
		data, err := json.MarshalIndent(newResultJSON(result, classifier), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	showPreview := opts.preview || (!opts.noPreview && isTerminal(out))
	fmt.Fprint(out, formatResult(result, classifier, opts.format, showPreview))
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatResult renders a result as text in the given format.
func formatResult(result sentiment.Result, cl colour.Classifier, format string, showPreview bool) string {
	var b strings.Builder

	verdict := "sad"
	if result.IsHappy {
		verdict = "happy"
	}
	fmt.Fprintf(&b, "Palette is %s (%d colours", verdict, result.Palette.Len())
	if len(result.DominantMap) > 0 {
		fmt.Fprintf(&b, ", %d dominant", result.Dominants.Len())
	}
	b.WriteString(")\n")

	switch format {
	case "table":
		table := NewTable([]string{"#", "Colour", "RGB", "Happy", "Dominant"})
		for i, c := range result.Palette.Colors {
			dominant := ""
			if rep, ok := result.DominantMap[c]; ok {
				dominant = rep.Hex()
			}
			table.AddRow([]string{strconv.Itoa(i + 1), c.Hex(), c.String(), yesNo(cl.IsHappy(c)), dominant})
		}
		b.WriteString(table.Render())
	default:
		for _, c := range result.Palette.Colors {
			text := c.Hex()
			if format == "rgb" {
				text = c.String()
			}
			if showPreview {
				label := "sad"
				if cl.IsHappy(c) {
					label = "happy"
				}
				text = colour.ColourPreviewWithText(c, label, 8) + " " + text
			}
			b.WriteString(text + "\n")
		}
	}

	if result.Remapped {
		b.WriteString("Remapped colours:\n")
		for _, e := range result.Remap {
			line := fmt.Sprintf("  %s -> %s (%s)", e.Sad.Hex(), e.Replacement.RGB.Hex(), e.Replacement.Name)
			if showPreview {
				line = fmt.Sprintf("  %s -> %s", colour.FormatColourWithPreview(e.Sad, 4), colour.FormatColourWithLabel(e.Replacement.RGB, e.Replacement.Name, 4))
			}
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// colourVerdictJSON is one palette entry in JSON output.
type colourVerdictJSON struct {
	colour.ColorJSON
	Happy    bool   `json:"happy"`
	Dominant string `json:"dominant,omitempty"`
}

type remapJSON struct {
	Sad         string `json:"sad"`
	Replacement string `json:"replacement"`
	Name        string `json:"name"`
}

// resultJSON is the JSON shape of a sentiment result.
type resultJSON struct {
	Happy      bool                `json:"happy"`
	Palette    []colourVerdictJSON `json:"palette"`
	Dominants  colour.PaletteJSON  `json:"dominants"`
	Remapped   bool                `json:"remapped"`
	Remap      []remapJSON         `json:"remap,omitempty"`
	Recoloured int                 `json:"recoloured_pixels"`
}

func newResultJSON(result sentiment.Result, cl colour.Classifier) resultJSON {
	out := resultJSON{
		Happy:      result.IsHappy,
		Palette:    make([]colourVerdictJSON, 0, result.Palette.Len()),
		Dominants:  result.Dominants.JSON(),
		Remapped:   result.Remapped,
		Recoloured: result.Recoloured,
	}
	for _, c := range result.Palette.Colors {
		entry := colourVerdictJSON{
			ColorJSON: colour.ColorJSON{Hex: c.Hex(), RGB: c},
			Happy:     cl.IsHappy(c),
		}
		if rep, ok := result.DominantMap[c]; ok {
			entry.Dominant = rep.Hex()
		}
		out.Palette = append(out.Palette, entry)
	}
	for _, e := range result.Remap {
		out.Remap = append(out.Remap, remapJSON{
			Sad:         e.Sad.Hex(),
			Replacement: e.Replacement.RGB.Hex(),
			Name:        e.Replacement.Name,
		})
	}
	return out
}
