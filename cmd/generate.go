// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xataio/smig/pkg/emit"
)

func generateCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Diff the desired schema against the database and print the migration without applying it",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := connect(cmd)
			if err != nil {
				return err
			}
			defer r.close()

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
				return nil
			}

			up, down := emit.Emit(cs)
			return writeGenerated(outPath, up, down)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write up/down DDL to <path>.up.surql and <path>.down.surql instead of stdout")

	return cmd
}

func writeGenerated(outPath, up, down string) error {
	if outPath == "" {
		fmt.Println("-- up")
		fmt.Println(up)
		fmt.Println("-- down")
		fmt.Println(down)
		return nil
	}

	if err := os.WriteFile(outPath+".up.surql", []byte(up+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s.up.surql: %w", outPath, err)
	}
	if err := os.WriteFile(outPath+".down.surql", []byte(down+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s.down.surql: %w", outPath, err)
	}
	return nil
}
