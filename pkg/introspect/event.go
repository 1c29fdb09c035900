// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var eventHeaderRE = regexp.MustCompile(`(?is)^DEFINE\s+EVENT\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)\s+ON\s+(?:TABLE\s+)?(\S+)`)

// ParseEvent parses a single `DEFINE EVENT ...` DDL string into a
// *schema.Event. The trigger type is inferred by inspecting the WHEN
// clause text for one of the literal strings "CREATE", "UPDATE",
// "DELETE", per §4.3.
func ParseEvent(ddl string) (*schema.Event, error) {
	m := eventHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("event", ddl)
	}

	e := &schema.Event{Name: unquoteIdent(m[1])}

	whenIdx := strings.Index(strings.ToUpper(ddl), "WHEN")
	thenIdx := strings.Index(strings.ToUpper(ddl), "THEN")
	if whenIdx < 0 || thenIdx < 0 || thenIdx < whenIdx {
		return nil, errUnrecognized("event", ddl)
	}

	whenClause := strings.TrimSpace(ddl[whenIdx+len("WHEN") : thenIdx])
	e.When = whenClause

	switch {
	case strings.Contains(strings.ToUpper(whenClause), "CREATE"):
		e.Trigger = schema.EventOnCreate
	case strings.Contains(strings.ToUpper(whenClause), "UPDATE"):
		e.Trigger = schema.EventOnUpdate
	case strings.Contains(strings.ToUpper(whenClause), "DELETE"):
		e.Trigger = schema.EventOnDelete
	}

	thenBody := ddl[thenIdx+len("THEN"):]
	if body, _, ok := scanBraceBlock(thenBody, 0); ok {
		e.Then = "{ " + strings.TrimSpace(body) + " }"
	} else {
		e.Then = strings.TrimSpace(thenBody)
	}

	return e, nil
}

// ParseEventSafe never returns an error: a failure yields an Event
// flagged Unknown, carrying only its name.
func ParseEventSafe(ddl string) *schema.Event {
	e, err := ParseEvent(ddl)
	if err == nil {
		return e
	}
	return &schema.Event{Name: extractFallbackName(ddl, "EVENT"), Unknown: true}
}
