// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const schemaBody = `import "github.com/xataio/smig/pkg/schema"

func Schema() (*schema.Schema, error) {
	return schema.NewBuilder().
		AddTable(schema.NewTable("example").
			Field(schema.NewField("name", "string").Required())).
		Build()
}
`

type scaffoldMeta struct {
	ModuleID    string `yaml:"moduleId"`
	GeneratedBy string `yaml:"generatedBy"`
	BuildHint   string `yaml:"buildHint"`
}

func renderScaffold(moduleID string) (string, error) {
	meta, err := yaml.Marshal(scaffoldMeta{
		ModuleID:    moduleID,
		GeneratedBy: "smig init",
		BuildHint:   "go build -buildmode=plugin -o schema.so schema.go",
	})
	if err != nil {
		return "", fmt.Errorf("init: rendering scaffold metadata: %w", err)
	}

	var header strings.Builder
	header.WriteString("// SPDX-License-Identifier: Apache-2.0\n\n")
	header.WriteString("// Package main is a smig schema module. Build it as a Go plugin and\n")
	header.WriteString("// point smig's --schema flag at the resulting .so file.\n")
	for _, line := range strings.Split(strings.TrimRight(string(meta), "\n"), "\n") {
		header.WriteString("// " + line + "\n")
	}
	header.WriteString("package main\n\n")
	header.WriteString(schemaBody)

	return header.String(), nil
}

func initCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter schema module",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				outPath = "schema.go"
			}

			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("init: %s already exists", outPath)
			}

			content, err := renderScaffold(uuid.NewString())
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("init: writing %s: %w", outPath, err)
			}

			fmt.Printf("Wrote starter schema module to %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "path to write the starter schema module to (default schema.go)")

	return cmd
}
