// Package main provides the reportgen CLI: a spreadsheet upload client and the report server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/medilink/reportgen/internal/config"
	"github.com/medilink/reportgen/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

var configPath string

// errReported marks a failure whose message has already been shown.
var errReported = errors.New("reported")

func main() {
	rootCmd := &cobra.Command{
		Use:   "reportgen",
		Short: "Generate patient reports from spreadsheets",
		Long: `reportgen uploads a patient spreadsheet to the report server and saves
the returned archive, or runs the report server itself.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "reportgen.yaml", "Path to the YAML configuration file")

	rootCmd.AddCommand(newUploadCmd(), newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// loadRuntime reads configuration and builds the logger it describes.
func loadRuntime() (*config.AppConfig, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logging.New(cfg.Advanced.LogLevel, cfg.Advanced.LogFormat), nil
}
