// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Connect to the database and execute a trivial ledger query",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			defer r.close()

			if _, err := r.client.ExecuteQuery(cmd.Context(), "INFO FOR DB;"); err != nil {
				return fmt.Errorf("test: %w", err)
			}

			fmt.Printf("Connected to %s (namespace=%s database=%s)\n", r.cfg.URL, r.cfg.Namespace, r.cfg.Database)
			return nil
		},
	}
}
