// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	fieldHeaderRE  = regexp.MustCompile(`(?is)^DEFINE\s+FIELD\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)\s+ON\s+(?:TABLE\s+)?(\S+)`)
	fieldTypeRE    = regexp.MustCompile(`(?is)\bTYPE\s+(.+?)(?:\s+(?:DEFAULT|VALUE|ASSERT|PERMISSIONS|COMMENT|REFERENCE|READONLY|FLEXIBLE)\b|$)`)
	fieldDefaultRE = regexp.MustCompile(`(?is)\bDEFAULT(?:\s+ALWAYS)?\s+(.+?)(?:\s+(?:VALUE|ASSERT|PERMISSIONS|COMMENT|REFERENCE|READONLY|FLEXIBLE)\b|$)`)
	fieldAssertRE  = regexp.MustCompile(`(?is)\bASSERT\s+(.+?)(?:\s+(?:PERMISSIONS|COMMENT|VALUE|DEFAULT)\b|$)`)
	fieldPermsRE   = regexp.MustCompile(`(?is)\bPERMISSIONS\s+(.+?)(?:\s+COMMENT\b|$)`)
	fieldCommentRE = regexp.MustCompile(`(?is)\bCOMMENT\s+(.+?)(?:\s+(?:PERMISSIONS|VALUE|DEFAULT|ASSERT)\b|$)`)
	fieldRefRE     = regexp.MustCompile(`(?is)\bREFERENCE\s+TABLE\s+(\S+?)(?:\s+ON\s+DELETE\s+(\S+(?:\s+\S+)?))?(?:\s|$)`)
	fieldOnDelRE   = regexp.MustCompile(`(?is)\bON\s+DELETE\s+(CASCADE|SET\s+NULL|SET\s+DEFAULT|RESTRICT)\b`)
)

// ParseField parses a single `DEFINE FIELD ...` DDL string, as returned
// inside `INFO FOR TABLE <t>`, into a *schema.Field. On a clause it
// cannot recognize, it still returns a best-effort Field with the
// recognized clauses populated; callers that need the "unknown" failure
// semantics of §4.3 should use ParseFieldSafe.
func ParseField(ddl string) (*schema.Field, error) {
	m := fieldHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("field", ddl)
	}

	f := &schema.Field{
		Name:        unquoteIdent(m[1]),
		Permissions: schema.DefaultPermissions,
	}

	rest := strings.TrimSuffix(strings.TrimSpace(ddl), ";")

	if idx := strings.Index(strings.ToUpper(rest), " VALUE "); idx >= 0 {
		if body, _, ok := scanBraceBlock(rest, idx); ok {
			f.Value = "{ " + strings.TrimSpace(body) + " }"
			f.Computed = f.Value
		} else if body, _, ok := scanLegacyFutureBlock(rest, idx); ok {
			f.Value = "{ " + strings.TrimSpace(body) + " }"
			f.Computed = f.Value
		} else if mm := regexp.MustCompile(`(?is)\bVALUE\s+(.+?)(?:\s+(?:ASSERT|PERMISSIONS|COMMENT|DEFAULT)\b|$)`).FindStringSubmatch(rest[idx:]); mm != nil {
			f.Value = strings.TrimSpace(mm[1])
		}
	}

	if mm := fieldTypeRE.FindStringSubmatch(rest); mm != nil {
		f.Type = strings.TrimSpace(mm[1])
	}
	if mm := fieldDefaultRE.FindStringSubmatch(rest); mm != nil {
		f.Default = strings.TrimSpace(mm[1])
		f.DefaultAlways = regexp.MustCompile(`(?i)\bDEFAULT\s+ALWAYS\b`).MatchString(rest)
	}
	if mm := fieldAssertRE.FindStringSubmatch(rest); mm != nil {
		f.Assert = splitAssertAnd(strings.TrimSpace(mm[1]))
	}
	if mm := fieldPermsRE.FindStringSubmatch(rest); mm != nil {
		f.Permissions = strings.TrimSpace(mm[1])
	}
	if mm := fieldCommentRE.FindStringSubmatch(rest); mm != nil {
		f.Comments = append(f.Comments, unquoteString(strings.TrimSpace(mm[1])))
	}
	if mm := fieldRefRE.FindStringSubmatch(rest); mm != nil {
		table := unquoteIdent(mm[1])
		f.References = &table
	}
	if mm := fieldOnDelRE.FindStringSubmatch(rest); mm != nil {
		f.OnDelete = schema.OnDeleteAction(strings.ToUpper(collapseSpace(mm[1])))
	}

	f.Readonly = containsWord(rest, "READONLY")
	f.Flexible = containsWord(rest, "FLEXIBLE")
	f.IfNotExists = regexp.MustCompile(`(?i)\bIF\s+NOT\s+EXISTS\b`).MatchString(rest)
	f.Overwrite = containsWord(rest, "OVERWRITE")

	return f, nil
}

// ParseFieldSafe never returns an error: an unparseable clause yields a
// Field flagged Unknown, carrying only its name, so the differ compares
// it solely by name (§4.3 failure semantics).
func ParseFieldSafe(ddl string) *schema.Field {
	f, err := ParseField(ddl)
	if err == nil {
		return f
	}
	name := "?"
	if m := regexp.MustCompile(`(?is)^DEFINE\s+FIELD\s+(\S+)`).FindStringSubmatch(ddl); m != nil {
		name = unquoteIdent(m[1])
	}
	return &schema.Field{Name: name, Unknown: true}
}

// splitAssertAnd splits a combined "(c1) AND (c2) AND c3" form back into
// its ordered component conditions, reversing the combination §3.3
// describes. Parenthesized members have their wrapping parens stripped.
func splitAssertAnd(combined string) []string {
	parts := splitTopLevelAnd(combined)
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if strings.HasPrefix(p, "(") && strings.HasSuffix(p, ")") {
			p = p[1 : len(p)-1]
		}
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func splitTopLevelAnd(s string) []string {
	var parts []string
	depth := 0
	last := 0
	upper := strings.ToUpper(s)
	i := 0
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 && strings.HasPrefix(upper[i:], " AND ") {
			parts = append(parts, s[last:i])
			i += len(" AND ")
			last = i
			continue
		}
		i++
	}
	parts = append(parts, s[last:])
	return parts
}
