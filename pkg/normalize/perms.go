// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"regexp"
	"strings"
)

var (
	deleteClauseRE = regexp.MustCompile(`(?i),?\s*FOR\s+DELETE\s+[^,]*`)
	forSplitRE     = regexp.MustCompile(`(?i)\bFOR\s+`)
)

// Perms canonicalizes a permissions clause: empty or NONE collapses to
// FULL, the deprecated FOR DELETE clause is removed, consecutive FOR
// clauses are comma-separated, and keywords are uppercased.
func Perms(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.EqualFold(p, "NONE") {
		return "FULL"
	}
	if strings.EqualFold(p, "FULL") {
		return "FULL"
	}

	p = deleteClauseRE.ReplaceAllString(p, "")
	p = collapseWhitespace(p)
	p = strings.Trim(p, ", ")

	parts := splitForClauses(p)
	for i, part := range parts {
		parts[i] = uppercaseKeywords(strings.Trim(strings.TrimSpace(part), ","))
	}
	return strings.Join(parts, ", ")
}

// splitForClauses splits a permissions body into its "FOR ..." clauses.
// Clause boundaries are wherever the keyword FOR starts a new clause,
// whether or not it is preceded by whitespace (it may follow a comma or
// sit at the very start of the string).
func splitForClauses(p string) []string {
	idxs := forSplitRE.FindAllStringIndex(p, -1)
	if len(idxs) == 0 {
		return []string{p}
	}

	var clauses []string
	for i, loc := range idxs {
		start := loc[0]
		end := len(p)
		if i+1 < len(idxs) {
			end = idxs[i+1][0]
		}
		clauses = append(clauses, strings.TrimSpace(p[start:end]))
	}
	return clauses
}

var keywordRE = regexp.MustCompile(`(?i)\b(for|select|create|update|delete|full|none|where)\b`)

func uppercaseKeywords(s string) string {
	return keywordRE.ReplaceAllStringFunc(s, strings.ToUpper)
}
