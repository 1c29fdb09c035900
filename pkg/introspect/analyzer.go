// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	analyzerHeaderRE   = regexp.MustCompile(`(?is)^DEFINE\s+ANALYZER\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)`)
	analyzerTokenizersRE = regexp.MustCompile(`(?i)\bTOKENIZERS\s+([a-zA-Z0-9_,]+)`)
	analyzerFiltersRE  = regexp.MustCompile(`(?i)\bFILTERS\s+([a-zA-Z0-9_,()]+)`)
	analyzerFunctionRE = regexp.MustCompile(`(?i)\bFUNCTION\s+(\S+)`)
)

// ParseAnalyzer parses a single `DEFINE ANALYZER ...` DDL string into a
// *schema.Analyzer. TOKENIZERS and FILTERS are comma-separated lists.
func ParseAnalyzer(ddl string) (*schema.Analyzer, error) {
	m := analyzerHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("analyzer", ddl)
	}

	an := &schema.Analyzer{Name: unquoteIdent(m[1])}

	if mm := analyzerTokenizersRE.FindStringSubmatch(ddl); mm != nil {
		for _, t := range strings.Split(mm[1], ",") {
			an.Tokenizer = append(an.Tokenizer, strings.TrimSpace(t))
		}
	}
	if mm := analyzerFiltersRE.FindStringSubmatch(ddl); mm != nil {
		for _, f := range strings.Split(mm[1], ",") {
			an.Filters = append(an.Filters, strings.TrimSpace(f))
		}
	}
	if mm := analyzerFunctionRE.FindStringSubmatch(ddl); mm != nil {
		an.Function = unquoteIdent(mm[1])
	}

	return an, nil
}

// ParseAnalyzerSafe never returns an error: a failure yields an Analyzer
// flagged Unknown, carrying only its name.
func ParseAnalyzerSafe(ddl string) *schema.Analyzer {
	an, err := ParseAnalyzer(ddl)
	if err == nil {
		return an
	}
	return &schema.Analyzer{Name: extractFallbackName(ddl, "ANALYZER"), Unknown: true}
}
