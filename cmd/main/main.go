package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"jyotish-chart/src/config"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/default.yaml"

// -----------------------------------------------------------------------------

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "jyotish",
		Short:         "Vedic birth chart calculator",
		Long:          "jyotish derives sidereal birth charts (grahas, vargas, yogas, dashas, strengths and the annual return) and serves them over HTTP, WebSocket and gRPC.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", defaultConfigPath, "path to config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newChartCmd())
	return root
}

// -----------------------------------------------------------------------------

// loadConfig reads the --config file. A missing default file falls back to
// the built-in defaults; a missing explicit file is an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	conf, err := config.NewConfig(path)
	if err == nil {
		return conf, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		defaults := config.Default()
		return &config.Config{MConfig: &defaults}, nil
	}
	return nil, fmt.Errorf("error loading config: %w", err)
}
