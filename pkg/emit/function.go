// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

func defineFunction(f *schema.Function, overwrite bool) string {
	var params []string
	for _, p := range f.Params {
		params = append(params, fmt.Sprintf("$%s: %s", p.Name, p.Type))
	}

	parts := []string{"DEFINE FUNCTION"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, fmt.Sprintf("%s(%s)", f.Name, strings.Join(params, ", ")))
	if f.ReturnType != "" {
		parts = append(parts, "->", f.ReturnType)
	}
	parts = append(parts, renderBlock(f.Body))
	if f.Permissions != "" && f.Permissions != schema.DefaultPermissions {
		parts = append(parts, "PERMISSIONS", f.Permissions)
	}
	return joinClauses(parts...) + ";"
}

func removeFunction(name string) string {
	return "REMOVE FUNCTION " + name + ";"
}

// renameFunctionStatements renders a single native rename directive, per
// §4.4/§8: a function rename must never compile to a REMOVE+DEFINE pair.
func renameFunctionStatements(oldName string, f *schema.Function) string {
	return fmt.Sprintf("ALTER FUNCTION %s RENAME TO %s;", oldName, f.Name)
}
