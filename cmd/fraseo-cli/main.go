// Package main provides the fraseo CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vozclara/fraseo/internal/config"
	"github.com/vozclara/fraseo/internal/observability"
)

var (
	// Global flags
	cfgFile    string
	outputJSON bool

	// Configuration and logger
	cfg    *config.Config
	logger *observability.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "fraseo-cli",
	Short: "Phrase matching CLI for search, spell-out, and administration",
	Long: `fraseo-cli provides commands for exercising the phrase matcher
from the terminal.

Use this tool to:
- Search the phrase catalog for the best match of a query
- Spell out arbitrary text character by character
- List the thematic groups and their phrases
- Warm the embedding cache ahead of a deployment
- Review recent searches from the audit log

All commands support --json for automation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logFormat := "console"
		if outputJSON {
			logFormat = "json"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       cfg.Observability.LogLevel,
			Format:      logFormat,
			ServiceName: "fraseo-cli",
		})

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default: uses env vars)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(newBuscarCmd())
	rootCmd.AddCommand(newDeletrearCmd())
	rootCmd.AddCommand(newGruposCmd())
	rootCmd.AddCommand(newWarmCmd())
	rootCmd.AddCommand(newRecientesCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
