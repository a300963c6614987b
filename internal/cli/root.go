// Package cli provides the command-line interface for happyavatar.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/happyavatar/internal/config"
	"github.com/jmylchreest/happyavatar/internal/logging"
	"github.com/jmylchreest/happyavatar/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose      bool
	quiet        bool
	configPath   string
	envFile      string
	canvasSize   int
	seed         uint64
	reducer      string
	policy       string
	legacyGating bool
}

// NewRootCmd builds the happyavatar command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "happyavatar",
		Short: "Make sad circular avatars happy",
		Long: `happyavatar analyses the colour palette of a circular avatar, decides whether it
reads as happy (vivid hues) or sad (greys), and recolours sad colours with
randomly chosen happy ones while keeping the circular transparency mask.

Configuration is read from defaults, an optional YAML file (--config), a .env
file in the working directory and HAPPYAVATAR_* environment variables, in that
order. Flags override everything.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	flags.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file to read (ignored if missing)")
	flags.IntVar(&opts.canvasSize, "size", 0, "canvas size in pixels (default from config: 512)")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed for replacement colours (0 = time based)")
	flags.StringVar(&opts.reducer, "reducer", "", "dominant colour reducer (kmeans, dominant)")
	flags.StringVar(&opts.policy, "policy", "", "remap policy (strict, always)")
	flags.BoolVar(&opts.legacyGating, "legacy-gating", false, "also reject too dark, too light or desaturated colours")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newAnalyseCmd(opts))
	rootCmd.AddCommand(newFixCmd(opts))
	rootCmd.AddCommand(newResizeCmd(opts))

	return rootCmd
}

// setup builds the logger and the effective configuration for cmd.
func (o *globalOptions) setup(cmd *cobra.Command) (config.Config, hclog.Logger, error) {
	logger := logging.New(logging.Options{
		Verbose: o.verbose,
		Quiet:   o.quiet,
		Output:  cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(config.LoadOptions{Path: o.configPath, EnvFile: o.envFile})
	if err != nil {
		return config.Config{}, nil, err
	}

	o.apply(cmd.Flags(), &cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("configuration loaded", "canvas_size", cfg.CanvasSize, "reducer", cfg.Reducer, "policy", cfg.RemapPolicy)

	return cfg, logger, nil
}

// apply copies the flags that were set explicitly onto cfg.
func (o *globalOptions) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("size") {
		cfg.CanvasSize = o.canvasSize
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("reducer") {
		cfg.Reducer = o.reducer
	}
	if flags.Changed("policy") {
		cfg.RemapPolicy = o.policy
	}
	if flags.Changed("legacy-gating") {
		cfg.LegacyGating = o.legacyGating
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
