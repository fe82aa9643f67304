package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vozclara/fraseo/internal/audit"
)

// newRecientesCmd creates the recientes subcommand.
func newRecientesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recientes",
		Short: "List recent searches from the audit log",
		Long: `Lists the most recent search outcomes recorded in the audit
database. Requires a configured database driver.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Database.Driver == "" {
				return fmt.Errorf("no database configured; set database.driver or DATABASE_URL")
			}

			store, err := audit.Open(cfg.Database, logger)
			if err != nil {
				return fmt.Errorf("open audit store: %w", err)
			}
			defer store.Close()

			events, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list recent searches: %w", err)
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(events)
			}

			if len(events) == 0 {
				fmt.Println("Sin búsquedas registradas")
				return nil
			}
			for _, ev := range events {
				when := ev.OccurredAt.Format("2006-01-02 15:04:05")
				if ev.SpellOut {
					color.New(color.FgYellow).Printf("%s  %-20q deletreo   %.4f\n", when, ev.Query, ev.Similarity)
				} else {
					color.New(color.FgGreen).Printf("%s  %-20q grupo %-3s %.4f\n", when, ev.Query, ev.Group, ev.Similarity)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of searches to show")
	return cmd
}
