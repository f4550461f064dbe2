package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"flightplots/internal/config"
	"flightplots/internal/logging"
)

var (
	configPath string
	schemaPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flightplots",
	Short: "Yellowjacket flight log charts",
	Long:  "flightplots builds the Yellowjacket chart page for PX4 flight logs and serves, renders or inspects it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath, schemaPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		cfg = loaded
		logger := logging.NewWithLevel(os.Stderr, cfg.Logging.Level, cfg.Logging.JSON)
		cmd.SetContext(logging.NewContext(cmd.Context(), logger))
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration YAML (defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "Path to CUE schema file (built-in schema when empty)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(inspectCmd)
}
