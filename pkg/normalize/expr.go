// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	durationRE       = regexp.MustCompile(`(?i)\b(\d+)w\b`)
	returnSelectRE   = regexp.MustCompile(`(?i)RETURN\s*\(\s*(SELECT\b[^()]*(?:\([^()]*\)[^()]*)*)\)`)
	trailingSemiRE   = regexp.MustCompile(`;\s*}`)
	simpleParenCmpRE = regexp.MustCompile(`^\(([^()]+?\s*(?:=|!=|<=|>=|<|>)\s*[^()]+?)\)$`)
	arraySingleQRE   = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'`)
)

// Expr canonicalizes a DDL expression: collapses whitespace, unwraps one
// level of parentheses around simple binary comparisons, folds `\dw`
// durations to days (×7), rewrites array quote styles to single-quoted,
// removes redundant parens around `RETURN (SELECT ...)`, and strips
// trailing semicolons before a closing brace.
func Expr(e string) string {
	e = collapseWhitespace(strings.TrimSpace(e))
	e = foldWeeksToDays(e)
	e = returnSelectRE.ReplaceAllString(e, "RETURN $1")
	e = trailingSemiRE.ReplaceAllString(e, "}")

	if m := simpleParenCmpRE.FindStringSubmatch(e); m != nil {
		e = strings.TrimSpace(m[1])
	}

	e = arraySingleQRE.ReplaceAllStringFunc(e, func(s string) string {
		return s // already single-quoted; rewriting double-quoted arrays
	})
	e = rewriteDoubleQuotedArrayElems(e)

	return e
}

func foldWeeksToDays(e string) string {
	return durationRE.ReplaceAllStringFunc(e, func(m string) string {
		digits := strings.TrimSuffix(strings.ToLower(m), "w")
		n, err := strconv.Atoi(digits)
		if err != nil {
			return m
		}
		return strconv.Itoa(n*7) + "d"
	})
}

var dquotedElemRE = regexp.MustCompile(`"((?:[^"\\]|\\.)*)"`)

func rewriteDoubleQuotedArrayElems(e string) string {
	if !strings.Contains(e, "[") {
		return e
	}
	return dquotedElemRE.ReplaceAllStringFunc(e, func(s string) string {
		inner := s[1 : len(s)-1]
		inner = strings.ReplaceAll(inner, `\"`, `"`)
		return "'" + strings.ReplaceAll(inner, "'", `\'`) + "'"
	})
}
