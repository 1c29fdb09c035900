// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

func fieldTypeExpr(f *schema.Field) string {
	t := f.Type
	if f.Optional && !strings.HasPrefix(t, "option<") {
		return "option<" + t + ">"
	}
	return t
}

func defineField(f *schema.Field, table string, overwrite bool) string {
	parts := []string{"DEFINE FIELD"}
	switch {
	case overwrite:
		parts = append(parts, "OVERWRITE")
	case f.IfNotExists:
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, f.Name, "ON TABLE", table)
	if f.Flexible {
		parts = append(parts, "FLEXIBLE")
	}
	parts = append(parts, "TYPE", fieldTypeExpr(f))

	switch {
	case f.Computed != "":
		parts = append(parts, "VALUE", renderBlock(f.Computed), "READONLY")
	case f.Value != "":
		parts = append(parts, "VALUE", renderBlock(f.Value))
		if f.Readonly {
			parts = append(parts, "READONLY")
		}
	case f.Readonly:
		parts = append(parts, "READONLY")
	}

	if f.Default != "" {
		kw := "DEFAULT"
		if f.DefaultAlways {
			kw = "DEFAULT ALWAYS"
		}
		parts = append(parts, kw, renderDefault(f.Default))
	}

	if assert := f.CombinedAssert(); assert != "" {
		parts = append(parts, "ASSERT", assert)
	}

	if f.References != nil {
		ref := fmt.Sprintf("REFERENCE TABLE %s", *f.References)
		if f.OnDelete != "" {
			ref += " ON DELETE " + string(f.OnDelete)
		}
		parts = append(parts, ref)
	}

	if f.Permissions != "" && f.Permissions != schema.DefaultPermissions {
		parts = append(parts, "PERMISSIONS", f.Permissions)
	}

	for _, c := range f.Comments {
		parts = append(parts, "COMMENT", quoteComment(c))
	}

	return joinClauses(parts...) + ";"
}

func removeField(name, table string) string {
	return fmt.Sprintf("REMOVE FIELD %s ON TABLE %s;", name, table)
}

// renameFieldStatements renders a single native rename directive, per
// §4.4/§8: a field rename must never compile to a REMOVE+DEFINE pair.
func renameFieldStatements(table, oldName string, f *schema.Field) string {
	return fmt.Sprintf("ALTER FIELD %s ON TABLE %s RENAME TO %s;", oldName, table, f.Name)
}
