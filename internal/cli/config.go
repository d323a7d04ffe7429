// Package cli provides the configuration and logging helpers shared by the command line.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ubuntu/sysfetch/internal/constants"
)

// InitViperConfig reads the configuration of cmd into vip.
//
// The configuration file is the one given by the config flag or the first file named cmdName found
// in constants.ConfigDirs. Not finding any file is not an error. Environment variables prefixed
// by the upper cased cmdName override the file.
func InitViperConfig(cmdName string, cmd *cobra.Command, vip *viper.Viper) error {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName(cmdName)
		for _, dir := range constants.ConfigDirs() {
			vip.AddConfigPath(dir)
		}
	}

	err := vip.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		slog.Info("No configuration file, using defaults, environment and flags only", "error", err)
	case err != nil:
		return fmt.Errorf("invalid configuration file: %w", err)
	default:
		slog.Info("Using configuration file", "file", vip.ConfigFileUsed())
	}

	return bindEnv(cmdName, vip)
}

// bindEnv binds every environment variable with the prefix of cmdName, so that they are part of
// vip.AllSettings and get unmarshalled.
func bindEnv(cmdName string, vip *viper.Viper) error {
	vip.SetEnvPrefix(cmdName)
	vip.AutomaticEnv()

	prefix := strings.ToUpper(strings.ReplaceAll(cmdName, "-", "_")) + "_"
	for _, e := range os.Environ() {
		name, _, _ := strings.Cut(e, "=")
		key, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}

		if err := vip.BindEnv(strings.ReplaceAll(strings.ToLower(key), "_", "-"), name); err != nil {
			return fmt.Errorf("could not bind environment variable %s: %w", name, err)
		}
	}
	return nil
}

// InstallConfigFlag adds the config flag to cmd.
func InstallConfigFlag(cmd *cobra.Command) *string {
	return cmd.PersistentFlags().String("config", "", "use a specific configuration file")
}
