// SPDX-License-Identifier: Apache-2.0

// Package emit renders a diff.ChangeSet into forward (up) and reverse
// (down) DDL scripts. Emit is a pure function: the same ChangeSet always
// produces byte-identical output.
package emit

import (
	"regexp"
	"strings"
)

var (
	expressionDefaultRE = regexp.MustCompile(`::|\(`)
	bareLiteralRE        = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+f?)?$`)
)

// renderDefault renders a DEFAULT value per §4.5: expression-shaped
// strings (containing `::` or `(`, or equal to NONE/NULL/true/false)
// emit verbatim; numeric/boolean literals emit verbatim; anything else
// is single-quoted with internal single quotes escaped.
func renderDefault(v string) string {
	if v == "" {
		return v
	}
	upper := strings.ToUpper(v)
	if upper == "NONE" || upper == "NULL" || upper == "TRUE" || upper == "FALSE" {
		return v
	}
	if expressionDefaultRE.MatchString(v) {
		return v
	}
	if bareLiteralRE.MatchString(v) {
		return v
	}
	if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "{") {
		return v
	}
	return "'" + strings.ReplaceAll(v, "'", "\\'") + "'"
}

// renderBlock wraps an already-normalized expression as a deferred
// `{ ... }` block, the only computed-field form the emitter produces
// per §9.
func renderBlock(expr string) string {
	expr = strings.TrimSpace(expr)
	if strings.HasPrefix(expr, "{") && strings.HasSuffix(expr, "}") {
		return expr
	}
	return "{ " + expr + " }"
}

func joinClauses(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " ")
}

func quoteComment(c string) string {
	return "'" + strings.ReplaceAll(c, "'", "\\'") + "'"
}
