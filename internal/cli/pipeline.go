package cli

import (
	"fmt"
	stdimage "image"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/happyavatar/internal/config"
	"github.com/jmylchreest/happyavatar/internal/image"
	"github.com/jmylchreest/happyavatar/internal/logging"
	"github.com/jmylchreest/happyavatar/internal/sentiment"
)

// loadAvatar loads path and normalises it to the configured canvas.
func loadAvatar(path string, cfg config.Config, logger hclog.Logger) (*stdimage.NRGBA, error) {
	defer logging.Timed(logger, "load image")()

	if err := image.ValidateImagePath(path); err != nil {
		return nil, fmt.Errorf("invalid image path: %w", err)
	}

	decoded, err := image.NewFileLoader().Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	return image.Normalise(decoded, cfg.CanvasSize, logger), nil
}

// newAnalyser builds the sentiment analyser described by cfg.
func newAnalyser(cfg config.Config, logger hclog.Logger) (*sentiment.Analyser, error) {
	opts, err := cfg.AnalyserOptions(logger)
	if err != nil {
		return nil, err
	}
	return sentiment.NewAnalyser(opts)
}
