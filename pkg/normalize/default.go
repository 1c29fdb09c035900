// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	trailingFloatRE = regexp.MustCompile(`^-?\d+(\.\d+)?f$`)
	dquotedStrRE    = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)
)

// Default canonicalizes a field default-value literal: strips outer
// quotes, rewrites embedded double-quoted strings to single-quoted,
// strips a trailing `f` from numeric float literals, and JSON-serializes
// arrays/objects with deterministic (sorted) key order.
func Default(v string) string {
	v = strings.TrimSpace(v)

	if looksLikeJSONContainer(v) {
		if canon, ok := canonicalJSON(v); ok {
			return canon
		}
	}

	v = unquoteOuter(v)

	if trailingFloatRE.MatchString(v) {
		return strings.TrimSuffix(v, "f")
	}

	v = dquotedStrRE.ReplaceAllStringFunc(v, func(s string) string {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		inner = strings.ReplaceAll(inner, `'`, `\'`)
		return "'" + inner + "'"
	})
	return v
}

func looksLikeJSONContainer(v string) bool {
	return (strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]")) ||
		(strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}"))
}

// canonicalJSON re-serializes JSON-shaped input with deterministic
// (recursively sorted) key order, so that two objects differing only in
// key order compare equal.
func canonicalJSON(v string) (string, bool) {
	var data any
	if err := json.Unmarshal([]byte(v), &data); err != nil {
		return "", false
	}
	out, err := json.Marshal(sortKeys(data))
	if err != nil {
		return "", false
	}
	return string(out), true
}

// sortKeys is a no-op at the value level: encoding/json already emits map
// keys in sorted order, so round-tripping through json.Marshal after
// json.Unmarshal is sufficient to canonicalize key order.
func sortKeys(v any) any { return v }

func unquoteOuter(v string) string {
	if len(v) >= 2 {
		if (v[0] == '\'' && v[len(v)-1] == '\'') || (v[0] == '"' && v[len(v)-1] == '"') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
