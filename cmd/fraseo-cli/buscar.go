package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// newBuscarCmd creates the buscar subcommand.
func newBuscarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buscar <texto>",
		Short: "Search the catalog for the closest phrase",
		Long: `Searches the phrase catalog for the thematic group and phrase
closest to the given text. Unrecognized words such as proper names are
spelled out character by character instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			_, engine, err := buildEngine(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize matcher: %w", err)
			}

			result, err := engine.Search(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			if result.SpellOut {
				color.New(color.FgYellow, color.Bold).Printf("Deletreo activado (similitud %.4f)\n", result.Similarity)
				fmt.Println(result.Phrase)
				return nil
			}

			color.New(color.FgGreen, color.Bold).Printf("Grupo %s (similitud %.4f)\n", result.Group, result.Similarity)
			fmt.Println(result.Phrase)
			return nil
		},
	}
	return cmd
}
