package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vozclara/fraseo/internal/catalog"
)

// newGruposCmd creates the grupos subcommand.
func newGruposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grupos [grupo]",
		Short: "List the thematic groups and their phrases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cfg.Dataset.Path)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			ids := cat.Groups()
			if len(args) == 1 {
				ids = []string{args[0]}
			}

			if outputJSON {
				grupos := make(map[string][]string, len(ids))
				for _, id := range ids {
					phrases, err := cat.Phrases(id)
					if err != nil {
						return err
					}
					grupos[id] = phrases
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"grupos": grupos})
			}

			for _, id := range ids {
				phrases, err := cat.Phrases(id)
				if err != nil {
					return err
				}
				color.New(color.FgMagenta, color.Bold).Printf("Grupo %s (%d frases)\n", id, len(phrases))
				for _, phrase := range phrases {
					fmt.Printf("  %s\n", phrase)
				}
			}
			return nil
		},
	}
	return cmd
}
