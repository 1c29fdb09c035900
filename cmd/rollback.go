// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/xataio/smig/pkg/ledger"
)

func rollbackCmd() *cobra.Command {
	var id string
	var to string

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Reverse the most recent migration, a specific one, or a range back to one",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			defer r.close()

			id = namespaceID(id)
			to = namespaceID(to)

			sp, _ := pterm.DefaultSpinner.WithText("Rolling back...").Start()

			if to != "" {
				done, err := r.mgr.RollbackAllAfter(cmd.Context(), to)
				if err != nil {
					sp.Fail(rollbackFailMessage(err))
					return err
				}
				sp.Success(fmt.Sprintf("Rolled back %d migration(s)", len(done)))
				return nil
			}

			mig, err := r.mgr.Rollback(cmd.Context(), id)
			if err != nil {
				sp.Fail(rollbackFailMessage(err))
				return err
			}
			sp.Success(fmt.Sprintf("Rolled back migration %s", mig.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", "", "specific migration id to roll back")
	cmd.Flags().StringVarP(&to, "to", "t", "", "roll back every migration applied at or after this id")

	return cmd
}

func rollbackFailMessage(err error) string {
	if errors.Is(err, ledger.ErrTampered) {
		return fmt.Sprintf("Rollback aborted: %s (tampered)", err)
	}
	return fmt.Sprintf("Rollback failed: %s", err)
}

// namespaceID prepends the "_migrations:" record-id prefix when absent,
// per §6.3.
func namespaceID(id string) string {
	if id == "" {
		return ""
	}
	const prefix = ledgerTablePrefix
	if len(id) >= len(prefix) && id[:len(prefix)] == prefix {
		return id
	}
	return prefix + id
}

const ledgerTablePrefix = "_migrations:"
