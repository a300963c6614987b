// Package config loads happyavatar settings from defaults, a YAML file, a
// .env file and HAPPYAVATAR_* environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/happyavatar/internal/colour"
	"github.com/jmylchreest/happyavatar/internal/sentiment"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "HAPPYAVATAR_"

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Config holds every tunable of the pipeline.
type Config struct {
	CanvasSize        int               `yaml:"canvas_size"`
	DominantThreshold int               `yaml:"dominant_threshold"`
	Reducer           string            `yaml:"reducer"`
	ReducerColours    int               `yaml:"reducer_colours"`
	LegacyGating      bool              `yaml:"legacy_gating"`
	RemapPolicy       string            `yaml:"remap_policy"`
	Seed              uint64            `yaml:"seed"`
	HappyColours      []string          `yaml:"happy_colours"`
	ColourTable       map[string]string `yaml:"colour_table"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CanvasSize:        colour.DefaultCanvasSize,
		DominantThreshold: sentiment.DefaultDominantThreshold,
		Reducer:           string(colour.ReducerKMeans),
		ReducerColours:    colour.DefaultReducerColours,
		RemapPolicy:       string(sentiment.PolicyStrict),
		HappyColours:      colour.DefaultHappyColourNames(),
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is an optional YAML file.
	Path string
	// EnvFile is an optional dotenv file. A missing file is ignored.
	EnvFile string
	// Environ overrides os.Environ, mainly for tests.
	Environ []string
}

// Load builds a Config from defaults, then the YAML file, then the dotenv
// file, then the process environment. The result is not validated, so that
// flags can still be applied on top.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		data, err := os.ReadFile(opts.Path) // #nosec G304 - User-specified config path, intended to be read
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", opts.Path, err)
		}
	}

	env := map[string]string{}
	if opts.EnvFile != "" {
		fileEnv, err := godotenv.Read(opts.EnvFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}

	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// applyEnv overlays HAPPYAVATAR_* values.
func (c *Config) applyEnv(env map[string]string) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, EnvPrefix)
		if !ok {
			continue
		}
		var err error
		switch name {
		case "CANVAS_SIZE":
			c.CanvasSize, err = strconv.Atoi(value)
		case "DOMINANT_THRESHOLD":
			c.DominantThreshold, err = strconv.Atoi(value)
		case "REDUCER":
			c.Reducer = value
		case "REDUCER_COLOURS":
			c.ReducerColours, err = strconv.Atoi(value)
		case "LEGACY_GATING":
			c.LegacyGating, err = strconv.ParseBool(value)
		case "REMAP_POLICY":
			c.RemapPolicy = value
		case "SEED":
			c.Seed, err = strconv.ParseUint(value, 10, 64)
		case "HAPPY_COLOURS":
			c.HappyColours = splitList(value)
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the configuration and reports the first invalid field.
func (c Config) Validate() error {
	if c.CanvasSize < 2 || c.CanvasSize%2 != 0 {
		return fmt.Errorf("canvas_size must be an even number of at least 2, got %d", c.CanvasSize)
	}
	if c.DominantThreshold < 1 {
		return fmt.Errorf("dominant_threshold must be at least 1, got %d", c.DominantThreshold)
	}
	if !colour.IsValidReducer(colour.ReducerKind(c.Reducer)) {
		return fmt.Errorf("reducer: unknown reducer %q (valid reducers: %v)", c.Reducer, colour.ValidReducers())
	}
	if c.ReducerColours < 1 || c.ReducerColours > 256 {
		return fmt.Errorf("reducer_colours must be between 1 and 256, got %d", c.ReducerColours)
	}
	if _, err := sentiment.ParsePolicy(c.RemapPolicy); err != nil {
		return fmt.Errorf("remap_policy: %w", err)
	}
	if _, err := c.HappyPalette(); err != nil {
		return fmt.Errorf("happy_colours: %w", err)
	}
	return nil
}

// HappyPalette resolves the configured happy colour names.
func (c Config) HappyPalette() ([]colour.NamedColour, error) {
	table, err := colour.NewColourTable(c.ColourTable)
	if err != nil {
		return nil, err
	}
	return table.Resolve(c.HappyColours)
}

// AnalyserOptions validates the configuration and turns it into analyser
// options using the given logger.
func (c Config) AnalyserOptions(logger hclog.Logger) (sentiment.Options, error) {
	if err := c.Validate(); err != nil {
		return sentiment.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}

	happy, err := c.HappyPalette()
	if err != nil {
		return sentiment.Options{}, err
	}
	picker, err := colour.NewRandomPicker(happy, c.Seed)
	if err != nil {
		return sentiment.Options{}, err
	}
	reducer, err := colour.NewReducer(colour.ReducerKind(c.Reducer), c.ReducerColours)
	if err != nil {
		return sentiment.Options{}, err
	}

	return sentiment.Options{
		CanvasSize:        c.CanvasSize,
		DominantThreshold: c.DominantThreshold,
		Reducer:           reducer,
		Classifier:        colour.Classifier{LegacyGating: c.LegacyGating},
		Picker:            picker,
		Policy:            sentiment.RemapPolicy(c.RemapPolicy),
		Logger:            logger,
	}, nil
}
