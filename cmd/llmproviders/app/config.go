package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/llmproviders/internal/config"
	"github.com/agentstation/llmproviders/pkg/constants"
	"github.com/agentstation/llmproviders/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// ProvidersFile is the YAML file declaring provider instances.
	ProvidersFile string
	// ProvidersFileSet is true when ProvidersFile was chosen by the user
	// rather than defaulted, which makes a missing file an error.
	ProvidersFileSet bool

	// Logging configuration. LogLevel comes from --log-level only; the
	// LOG_LEVEL variable lands in EnvLogLevel so -v and -q can beat it.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.llmproviders.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := config.BindEnv(
		constants.EnvOllamaBaseURL,
		constants.EnvOllamaAPIKey,
		constants.EnvProvidersFile,
	); err != nil {
		return nil, errors.WrapResource("bind", "environment", "", err)
	}

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")
	viper.SetConfigType("yaml")
	viper.SetConfigName(constants.ConfigFileName)

	// A missing config file is fine
	_ = viper.ReadInConfig()

	cfg := &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no_color"),
		Format:  viper.GetString("format"),

		ConfigFile: viper.ConfigFileUsed(),

		EnvLogLevel: viper.GetString("log_level"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	cfg.resolveProvidersFile()

	return cfg, nil
}

// ReadConfigFile loads an explicitly named config file on top of what
// LoadConfig found.
func (c *Config) ReadConfigFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return errors.WrapIO("read", path, err)
	}
	c.ConfigFile = viper.ConfigFileUsed()
	if !c.ProvidersFileSet {
		c.resolveProvidersFile()
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, providersFile string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
	if providersFile != "" {
		c.ProvidersFile = providersFile
		c.ProvidersFileSet = true
	}
}

func (c *Config) resolveProvidersFile() {
	if path := config.GetString(constants.EnvProvidersFile); path != "" {
		c.ProvidersFile = path
		c.ProvidersFileSet = true
		return
	}
	if path := viper.GetString("providers_file"); path != "" {
		c.ProvidersFile = path
		c.ProvidersFileSet = true
		return
	}
	c.ProvidersFile = constants.DefaultProvidersFile
	c.ProvidersFileSet = false
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env; neither overrides the real environment.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}
	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
