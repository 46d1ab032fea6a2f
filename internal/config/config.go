// Package config loads application configuration from config files,
// environment variables, and .env files, and converts it into engine
// settings.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/agentstation/apmatch/pkg/constants"
	"github.com/agentstation/apmatch/pkg/errors"
	"github.com/agentstation/apmatch/pkg/validate"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Validation settings
	Profile              string
	PriceToleranceAbs    string
	PriceToleranceRel    float64
	TotalToleranceAbs    string
	DescriptionThreshold float64
	FeeVocabulary        []string
	AlwaysApprove        bool
	Workers              int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.apmatch.yaml)
// 5. Defaults
func Load() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	// Set up Viper for environment variables
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// Try to read config file if it exists
	configFile := viper.GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in standard locations
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType(constants.ConfigFileType)
		viper.SetConfigName(constants.ConfigFileName)
	}

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()

	config := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no-color"),
		Output:  viper.GetString("output"),

		ConfigFile: viper.ConfigFileUsed(),

		Profile:              viper.GetString("profile"),
		PriceToleranceAbs:    viper.GetString("price_tolerance_abs"),
		PriceToleranceRel:    viper.GetFloat64("price_tolerance_rel"),
		TotalToleranceAbs:    viper.GetString("total_tolerance_abs"),
		DescriptionThreshold: viper.GetFloat64("description_threshold"),
		FeeVocabulary:        viper.GetStringSlice("fee_vocabulary"),
		AlwaysApprove:        viper.GetBool("always_approve"),
		Workers:              viper.GetInt("workers"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.Workers <= 0 {
		config.Workers = constants.DefaultBatchWorkers
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, output string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if output != "" {
		c.Output = output
	}
}

// ValidateConfig converts the loaded settings into an engine
// configuration, starting from the selected profile and applying any
// explicit overrides on top.
func (c *Config) ValidateConfig() (*validate.Config, error) {
	var cfg *validate.Config
	switch strings.ToLower(c.Profile) {
	case "", "default":
		cfg = validate.DefaultConfig()
	case "strict":
		cfg = validate.StrictConfig()
	case "relaxed":
		cfg = validate.RelaxedConfig()
	default:
		return nil, errors.NewConfigError("profile", "must be one of default, strict, relaxed")
	}

	if c.PriceToleranceAbs != "" {
		v, err := decimal.NewFromString(c.PriceToleranceAbs)
		if err != nil {
			return nil, errors.NewConfigError("price_tolerance_abs", "not a valid decimal: "+err.Error())
		}
		cfg.PriceToleranceAbs = v
	}
	if c.PriceToleranceRel != 0 {
		cfg.PriceToleranceRel = c.PriceToleranceRel
	}
	if c.TotalToleranceAbs != "" {
		v, err := decimal.NewFromString(c.TotalToleranceAbs)
		if err != nil {
			return nil, errors.NewConfigError("total_tolerance_abs", "not a valid decimal: "+err.Error())
		}
		cfg.TotalToleranceAbs = v
	}
	if c.DescriptionThreshold != 0 {
		cfg.DescriptionThreshold = c.DescriptionThreshold
	}
	if len(c.FeeVocabulary) > 0 {
		cfg.FeeVocabulary = append([]string(nil), c.FeeVocabulary...)
	}
	cfg.AlwaysApprove = c.AlwaysApprove

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	envFiles := []string{
		".env",
		".env.local",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns an environment variable value or default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
