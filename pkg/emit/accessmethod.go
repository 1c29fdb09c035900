// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"
	"time"

	"github.com/xataio/smig/pkg/schema"
)

func formatSurrealDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	if d%(24*time.Hour) == 0 {
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	}
	if d%time.Hour == 0 {
		return fmt.Sprintf("%dh", d/time.Hour)
	}
	return d.String()
}

func defineAccessMethod(a *schema.AccessMethod, overwrite bool) string {
	parts := []string{"DEFINE ACCESS"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, a.Name, "ON DATABASE TYPE", string(a.Type))
	if a.Signup != "" {
		parts = append(parts, "SIGNUP", a.Signup)
	}
	if a.Signin != "" {
		parts = append(parts, "SIGNIN", a.Signin)
	}
	if a.Authenticate != "" {
		parts = append(parts, "AUTHENTICATE", a.Authenticate)
	}
	var durations []string
	if a.TokenDuration != 0 {
		durations = append(durations, "FOR TOKEN "+formatSurrealDuration(a.TokenDuration))
	}
	if a.SessionDuration != 0 {
		durations = append(durations, "FOR SESSION "+formatSurrealDuration(a.SessionDuration))
	}
	if len(durations) > 0 {
		parts = append(parts, "DURATION", strings.Join(durations, ", "))
	}
	return joinClauses(parts...) + ";"
}

func removeAccessMethod(name string) string {
	return "REMOVE ACCESS " + name + " ON DATABASE;"
}

// renameAccessMethodStatements renders a single native rename directive,
// per §4.4/§8: an access method rename must never compile to a
// REMOVE+DEFINE pair.
func renameAccessMethodStatements(oldName string, a *schema.AccessMethod) string {
	return fmt.Sprintf("ALTER ACCESS %s ON DATABASE RENAME TO %s;", oldName, a.Name)
}
