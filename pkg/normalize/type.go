// SPDX-License-Identifier: Apache-2.0

// Package normalize canonicalizes DDL fragments so that two IRs denoting
// the same database state compare equal (§4.2). Every function here is a
// pure string transform and is required to be idempotent:
// Type(Type(x)) == Type(x), and likewise for the other four.
package normalize

import (
	"regexp"
	"strings"
)

var (
	wsRE          = regexp.MustCompile(`\s+`)
	optionalSuffx = regexp.MustCompile(`^(.*)\?$`)
	noneUnionRE   = regexp.MustCompile(`(?i)^\s*none\s*\|\s*(.+)$`)
)

// Type canonicalizes a type expression: lowercased, whitespace-collapsed,
// `X?` rewritten to `option<X>`, and `none | T` rewritten to `option<T>`.
// Nested generics and union members are preserved.
func Type(t string) string {
	t = collapseWhitespace(strings.TrimSpace(t))
	t = strings.ToLower(t)

	if m := optionalSuffx.FindStringSubmatch(t); m != nil {
		return "option<" + strings.TrimSpace(m[1]) + ">"
	}
	if m := noneUnionRE.FindStringSubmatch(t); m != nil {
		return "option<" + strings.TrimSpace(m[1]) + ">"
	}
	return t
}

func collapseWhitespace(s string) string {
	return wsRE.ReplaceAllString(s, " ")
}
