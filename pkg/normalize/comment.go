// SPDX-License-Identifier: Apache-2.0

package normalize

import "strings"

// NullSentinel is the canonical representation of an absent comment.
const NullSentinel = ""

// Comment canonicalizes a comment string: the literal strings "null",
// "undefined", and the Go zero value all coalesce to the null sentinel;
// any other string passes through unchanged.
func Comment(c string) string {
	trimmed := strings.TrimSpace(c)
	switch strings.ToLower(trimmed) {
	case "", "null", `"null"`, "undefined", `"undefined"`:
		return NullSentinel
	default:
		return c
	}
}
