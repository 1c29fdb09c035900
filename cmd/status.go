// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "List applied migrations and report whether the schema has pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			defer r.close()

			migrations, err := r.mgr.Status(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				for _, m := range migrations {
					doc, err := m.Export()
					if err != nil {
						return err
					}
					fmt.Println(string(doc))
				}
			} else if len(migrations) == 0 {
				fmt.Println("No migrations applied")
			} else {
				rows := [][]string{{"id", "appliedAt", "message"}}
				for _, m := range migrations {
					rows = append(rows, []string{m.ID, m.AppliedAt.Format("2006-01-02T15:04:05Z07:00"), m.Message})
				}
				table, _ := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
				fmt.Println(table)
			}

			desired, err := r.loadSchema()
			if err != nil {
				return err
			}
			cs, err := r.mgr.HasChanges(cmd.Context(), desired)
			if err != nil {
				return err
			}

			if cs.Empty() {
				fmt.Println("No changes detected")
			} else {
				fmt.Printf("%d pending change(s) detected\n", len(cs.Changes))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print each ledger row as a validated JSON document")

	return cmd
}
