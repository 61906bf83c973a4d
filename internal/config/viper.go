// Package config loads the providers file and resolves settings shared by
// the CLI and library callers.
package config

import (
	"os"

	"github.com/spf13/viper"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// BindEnv binds each key to the environment variable of the same name so
// values from .env files and config files resolve through GetString.
func BindEnv(keys ...string) error {
	for _, key := range keys {
		if err := viper.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}
