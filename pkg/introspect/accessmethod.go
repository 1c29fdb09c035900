// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"
	"time"

	"github.com/xataio/smig/pkg/schema"
)

var (
	accessHeaderRE  = regexp.MustCompile(`(?is)^DEFINE\s+ACCESS\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)\s+ON\s+(?:DATABASE|NS|ROOT)\b`)
	accessTypeRE    = regexp.MustCompile(`(?i)\bTYPE\s+(JWT|RECORD|BEARER)\b`)
	sessionDurRE    = regexp.MustCompile(`(?i)\bFOR\s+SESSION\s+([^\s,]+)`)
	tokenDurRE      = regexp.MustCompile(`(?i)\bFOR\s+TOKEN\s+([^\s,]+)`)
	signupKeywordRE = regexp.MustCompile(`(?i)\bSIGNUP\b`)
	signinKeywordRE = regexp.MustCompile(`(?i)\bSIGNIN\b`)
	authnKeywordRE  = regexp.MustCompile(`(?i)\bAUTHENTICATE\b`)
	durationForRE   = regexp.MustCompile(`(?i)\bDURATION\s+FOR\b`)
	accessCommentRE = regexp.MustCompile(`(?i)\bCOMMENT\b`)
)

// ParseAccessMethod parses a single `DEFINE ACCESS ...` DDL string into
// a *schema.AccessMethod. SIGNUP/SIGNIN/AUTHENTICATE clause bodies are
// free-form expressions (often themselves containing parenthesized
// subqueries), so each is captured up to the next recognized keyword or
// end of string rather than by a fixed grammar.
func ParseAccessMethod(ddl string) (*schema.AccessMethod, error) {
	m := accessHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("access method", ddl)
	}

	am := &schema.AccessMethod{Name: unquoteIdent(m[1])}

	if mm := accessTypeRE.FindStringSubmatch(ddl); mm != nil {
		am.Type = schema.AccessMethodType(strings.ToUpper(mm[1]))
	}
	if mm := sessionDurRE.FindStringSubmatch(ddl); mm != nil {
		am.SessionDuration, _ = parseSurrealDuration(mm[1])
	}
	if mm := tokenDurRE.FindStringSubmatch(ddl); mm != nil {
		am.TokenDuration, _ = parseSurrealDuration(mm[1])
	}

	am.Signup = extractClauseBody(ddl, signupKeywordRE, []*regexp.Regexp{signinKeywordRE, authnKeywordRE})
	am.Signin = extractClauseBody(ddl, signinKeywordRE, []*regexp.Regexp{authnKeywordRE})
	am.Authenticate = extractClauseBody(ddl, authnKeywordRE, nil)

	return am, nil
}

// extractClauseBody returns the text following the first match of
// start up to whichever of stops (or the DURATION/COMMENT tail) comes
// first, or "" if start never matches.
func extractClauseBody(ddl string, start *regexp.Regexp, stops []*regexp.Regexp) string {
	loc := start.FindStringIndex(ddl)
	if loc == nil {
		return ""
	}
	rest := ddl[loc[1]:]
	end := len(rest)
	allStops := make([]*regexp.Regexp, 0, len(stops)+2)
	allStops = append(allStops, stops...)
	allStops = append(allStops, durationForRE, accessCommentRE)
	for _, stop := range allStops {
		if l := stop.FindStringIndex(rest); l != nil && l[0] < end {
			end = l[0]
		}
	}
	return strings.TrimSpace(rest[:end])
}

// parseSurrealDuration parses a SurrealDB duration literal like "12h" or
// "30d" into a time.Duration, falling back to time.ParseDuration for
// units it understands natively.
func parseSurrealDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		if n, err := time.ParseDuration(strings.TrimSuffix(s, "d") + "h"); err == nil {
			return n * 24, nil
		}
	}
	if strings.HasSuffix(s, "w") {
		if n, err := time.ParseDuration(strings.TrimSuffix(s, "w") + "h"); err == nil {
			return n * 24 * 7, nil
		}
	}
	return time.ParseDuration(s)
}
