package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/stencil/internal/config"
	"github.com/conneroisu/stencil/internal/generator"
	"github.com/conneroisu/stencil/internal/logging"
	"github.com/conneroisu/stencil/internal/manifest"
	"github.com/conneroisu/stencil/internal/render"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Scaffold components, hooks and features from templates",
	Long: `Stencil generates source files from template directories.

Each template is a folder of files rendered with Go templates. An optional
.conf manifest declares variables, their allowed values and which files are
only produced under certain conditions. Architectures combine several
templates into a feature layout.

Quick Start:
  stencil list                           List templates and architectures
  stencil describe component             Show what a template accepts
  stencil generate UserCard -t component Generate from a template
  stencil feature checkout               Scaffold a feature

Command Aliases (for faster typing):
  generate (g), feature (f), describe (d), list (l)`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .stencil.yml, can also use STENCIL_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error, silent)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig points viper at the config file and enables STENCIL_
// environment overrides. A missing default file is fine; a broken one is
// reported and ignored so that --help keeps working.
func initConfig() {
	config.Setup(viper.GetViper(), cfgFile, os.Getenv)
	if err := config.ReadFile(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
}

// app holds the collaborators a command needs, built from configuration.
type app struct {
	cfg       *config.Config
	logger    logging.Logger
	generator *generator.Generator
	archs     *manifest.ArchitectureStore
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	lc, err := cfg.LoggerConfig()
	if err != nil {
		return nil, err
	}
	lc.Output = cmd.ErrOrStderr()
	logger := logging.NewLogger(lc)

	fs := afero.NewOsFs()
	env, err := render.ProcessEnv(fs, cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	gen := generator.New(generator.Options{
		TemplatesDir: cfg.TemplatesDir,
		OutputDir:    cfg.OutputDir,
		Workers:      cfg.Workers,
		Fs:           fs,
		Env:          env,
		Logger:       logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		generator: gen,
		archs:     manifest.NewArchitectureStore(fs, cfg.ArchitecturesDir),
	}, nil
}
