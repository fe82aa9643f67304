package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vozclara/fraseo/internal/textnorm"
)

// newDeletrearCmd creates the deletrear subcommand.
func newDeletrearCmd() *cobra.Command {
	var sinEspacios bool

	cmd := &cobra.Command{
		Use:   "deletrear <texto>",
		Short: "Spell out text character by character",
		Long: `Spells out the given text using Spanish letter and digraph names.
Spaces become the word "espacio" unless --sin-espacios is set, and
punctuation is announced by name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			texto := strings.Join(args, " ")
			spelled := textnorm.SpellOut(texto, !sinEspacios)

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"texto_original":   texto,
					"deletreo":         spelled,
					"total_caracteres": len(spelled),
				})
			}

			color.New(color.FgCyan, color.Bold).Printf("%s (%d caracteres)\n", texto, len(spelled))
			fmt.Println(strings.Join(spelled, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&sinEspacios, "sin-espacios", false, "omit spaces from the spell-out")
	return cmd
}
