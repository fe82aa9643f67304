package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newWarmCmd creates the warm subcommand.
func newWarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Precompute the embedding cache",
		Long: `Embeds every catalog phrase and writes the result to the embedding
cache file, so the API server starts without calling the encoder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := buildEngine(cmd.Context())
			if err != nil {
				return fmt.Errorf("warm embedding cache: %w", err)
			}

			if outputJSON {
				fmt.Printf("{\"grupos\": %d, \"frases\": %d, \"cache\": %q}\n",
					len(cat.Groups()), cat.TotalPhrases(), cfg.Matcher.EmbeddingCachePath)
				return nil
			}

			color.New(color.FgGreen).Printf("✓ %d frases en %d grupos embebidas en %s\n",
				cat.TotalPhrases(), len(cat.Groups()), cfg.Matcher.EmbeddingCachePath)
			return nil
		},
	}
	return cmd
}
