// Package cli is the agency-console command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agency-console/internal/config"
	"agency-console/internal/logger"
)

var version = "1.0.0"

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "agency-console",
	Short: "Operations console for the agency REST API",
	Long: `agency-console serves the role-gated operations console (clients, projects,
invoices, staff, handovers, notices, attendance and salaries) on top of the
agency REST API, and exposes the same session to scripted commands.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		if err := logger.Setup(logger.LogConfig{
			Level:      loaded.Log.Level,
			Format:     loaded.Log.Format,
			TimeFormat: loaded.Log.TimeFormat,
			Output:     loaded.Log.Output,
		}); err != nil {
			return fmt.Errorf("logger setup: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "path to the config file")
}
