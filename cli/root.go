// Package cli defines the cobra command tree for localgame.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"localgame-server/config"
	"localgame-server/logging"
)

var (
	flagConfig    string
	flagSource    string
	flagResources string
	flagFormat    string
	flagDev       bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "localgame",
		Short:         "Find tennis courts and ping pong tables near you",
		Long:          "Serve and query the LocalGame venue catalog: filter and rank nearby venues, check in, and render the venue map.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (default: built-in settings)")
	root.PersistentFlags().StringVar(&flagSource, "source", "", "catalog source (fixture|redis|sqlite|feed)")
	root.PersistentFlags().StringVar(&flagResources, "resources", "", "directory holding the JSON fixtures")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().BoolVar(&flagDev, "dev", false, "human readable debug logging")

	root.AddCommand(
		newServeCmd(),
		newExploreCmd(),
		newMapCmd(),
		newSeedCmd(),
	)

	return root
}

// loadConfig reads --config and applies the global flag overrides on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSource != "" {
		cfg.Source = flagSource
	}
	if flagResources != "" {
		cfg.ResourcesDir = flagResources
	}
	if flagDev {
		cfg.DevLogging = true
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	logger, err := logging.New(cfg.DevLogging)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// syncLogger flushes the logger, ignoring the harmless error from syncing a terminal.
func syncLogger(logger *zap.Logger) {
	if err := logger.Sync(); err != nil && flagDev {
		fmt.Fprintf(os.Stderr, "warning: syncing logger: %v\n", err)
	}
}
