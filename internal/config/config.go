// Package config loads stencil settings using Viper, so values can come from
// a .stencil.yml file, STENCIL_ environment variables or command-line flags.
//
// Settings cover where templates and architectures live, where output goes,
// the defaults used when a command omits a type or architecture, the worker
// count for file rendering and the logger.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/conneroisu/stencil/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. STENCIL_OUTPUT_DIR.
const EnvPrefix = "STENCIL"

// FileName is the config file looked up in the working directory.
const FileName = ".stencil"

// ConfigFileEnv names a config file outside the default search path.
const ConfigFileEnv = "STENCIL_CONFIG_FILE"

type Config struct {
	TemplatesDir        string    `mapstructure:"templates_dir" yaml:"templates_dir"`
	ArchitecturesDir    string    `mapstructure:"architectures_dir" yaml:"architectures_dir"`
	OutputDir           string    `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultType         string    `mapstructure:"default_type" yaml:"default_type"`
	DefaultArchitecture string    `mapstructure:"default_architecture" yaml:"default_architecture"`
	CreateFolder        bool      `mapstructure:"create_folder" yaml:"create_folder"`
	Workers             int       `mapstructure:"workers" yaml:"workers"`
	EnvFile             string    `mapstructure:"env_file" yaml:"env_file"`
	Log                 LogConfig `mapstructure:"log" yaml:"log"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("templates_dir", "./templates")
	v.SetDefault("architectures_dir", "./architectures")
	v.SetDefault("output_dir", ".")
	v.SetDefault("default_type", "component")
	v.SetDefault("default_architecture", "screaming-architecture")
	v.SetDefault("create_folder", true)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("env_file", ".env")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Setup points v at the config file and enables STENCIL_ environment
// overrides. Precedence for the file is: explicit path, then
// STENCIL_CONFIG_FILE, then .stencil.yml in the working directory.
func Setup(v *viper.Viper, cfgFile string, getenv func(string) string) {
	switch {
	case cfgFile != "":
		v.SetConfigFile(cfgFile)
	case getenv != nil && getenv(ConfigFileEnv) != "":
		v.SetConfigFile(getenv(ConfigFileEnv))
	default:
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(FileName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// ReadFile reads the configured file. A missing default file is not an
// error; a missing explicit file or a malformed one is.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}

// Load decodes the global Viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom decodes and validates the settings held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	result := ValidateConfigWithDetails(&config)
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid configuration: %w", &result.Errors[0])
	}

	return &config, nil
}

// LoggerConfig converts the log settings for logging.NewLogger.
func (c *Config) LoggerConfig() (*logging.LoggerConfig, error) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	lc := logging.DefaultConfig()
	lc.Level = level
	lc.Format = c.Log.Format
	return lc, nil
}
