// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"

	"github.com/xataio/smig/pkg/schema"
)

func defineEvent(e *schema.Event, table string, overwrite bool) string {
	parts := []string{"DEFINE EVENT"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, e.Name, "ON TABLE", table, "WHEN")
	if e.When != "" {
		parts = append(parts, e.When)
	} else {
		parts = append(parts, fmt.Sprintf("$event = %q", string(e.Trigger)))
	}
	parts = append(parts, "THEN", renderBlock(e.Then))
	return joinClauses(parts...) + ";"
}

func removeEvent(name, table string) string {
	return fmt.Sprintf("REMOVE EVENT %s ON TABLE %s;", name, table)
}
