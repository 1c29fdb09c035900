// SPDX-License-Identifier: Apache-2.0

// Package introspect parses the database's own `DEFINE ...` DDL strings
// (as returned by `INFO FOR DB` / `INFO FOR TABLE <t>`) back into the
// schema IR (§4.3). It is a collection of regex-driven extractors — one
// per entity kind — plus a brace-depth scanner for clauses that may
// contain multi-statement `{ ... }` blocks.
package introspect

import "strings"

// scanBraceBlock finds the first `{ ... }` block in s starting at or
// after the first `{` following start, honoring nested braces, and
// returns its contents (without the outer braces) and the index just
// past the closing brace. ok is false if no balanced block is found.
func scanBraceBlock(s string, start int) (contents string, end int, ok bool) {
	open := strings.IndexByte(s[start:], '{')
	if open < 0 {
		return "", 0, false
	}
	open += start

	depth := 0
	inString := byte(0)
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case inString != 0:
			if c == '\\' {
				i++
				continue
			}
			if c == inString {
				inString = 0
			}
		case c == '\'' || c == '"':
			inString = c
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[open+1 : i], i + 1, true
			}
		}
	}
	return "", 0, false
}

// scanLegacyFutureBlock matches the older `<future> { ... }` computed-
// field form (§9 open question), returning the same shape as
// scanBraceBlock.
func scanLegacyFutureBlock(s string, start int) (contents string, end int, ok bool) {
	idx := strings.Index(s[start:], "<future>")
	if idx < 0 {
		return "", 0, false
	}
	return scanBraceBlock(s, start+idx+len("<future>"))
}
