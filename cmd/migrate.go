// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Diff the desired schema against the database and apply the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			defer r.close()

			if err := r.mgr.Initialize(cmd.Context()); err != nil {
				return err
			}

			desired, err := r.loadSchema()
			if err != nil {
				return err
			}

			sp, _ := pterm.DefaultSpinner.WithText("Diffing schema...").Start()

			mig, err := r.mgr.Migrate(cmd.Context(), desired, message)
			if err != nil {
				sp.Fail(fmt.Sprintf("Migration failed: %s", err))
				return err
			}
			if mig == nil {
				sp.Success("No changes detected")
				return nil
			}

			sp.Success(fmt.Sprintf("Applied migration %s", mig.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "optional message recorded with the migration")

	return cmd
}
