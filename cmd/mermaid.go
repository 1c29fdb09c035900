// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xataio/smig/internal/mermaid"
	"github.com/xataio/smig/pkg/schema"
)

func mermaidCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "mermaid",
		Short: "Render the desired schema as a Mermaid entity-relationship diagram",
		RunE: func(cmd *cobra.Command, args []string) error {
			schemaPath, _ := cmd.Flags().GetString("schema")
			if schemaPath == "" {
				schemaPath = "schema.go"
			}
			desired, err := schema.LoadFromFile(schemaPath)
			if err != nil {
				return err
			}

			diagram := mermaid.Render(desired)

			if outPath == "" {
				fmt.Println(diagram)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(diagram), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the diagram to <path> instead of stdout")

	return cmd
}
