// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	paramHeaderRE  = regexp.MustCompile(`(?is)^DEFINE\s+PARAM\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\$?\S+)`)
	paramValueRE   = regexp.MustCompile(`(?is)\bVALUE\s+(.+?)(?:\s+COMMENT\b|$)`)
	paramCommentRE = regexp.MustCompile(`(?is)\bCOMMENT\s+(.+)$`)
)

// ParseParam parses a single `DEFINE PARAM $name VALUE ... [COMMENT ...]`
// DDL string into a *schema.Param.
func ParseParam(ddl string) (*schema.Param, error) {
	m := paramHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("param", ddl)
	}

	p := &schema.Param{Name: strings.TrimPrefix(unquoteIdent(m[1]), "$")}

	if mm := paramValueRE.FindStringSubmatch(ddl); mm != nil {
		p.Value = strings.TrimSpace(mm[1])
	}
	if mm := paramCommentRE.FindStringSubmatch(ddl); mm != nil {
		p.Comment = unquoteString(strings.TrimSpace(mm[1]))
	}

	return p, nil
}

// ParseParamSafe never returns an error: a failure yields a Param
// flagged Unknown, carrying only its name.
func ParseParamSafe(ddl string) *schema.Param {
	p, err := ParseParam(ddl)
	if err == nil {
		return p
	}
	return &schema.Param{Name: extractFallbackName(ddl, "PARAM"), Unknown: true}
}

var (
	sequenceHeaderRE      = regexp.MustCompile(`(?is)^DEFINE\s+SEQUENCE\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)`)
	sequenceStartRE       = regexp.MustCompile(`(?i)\bSTART\s+(\d+)`)
	sequenceBatchSizeRE   = regexp.MustCompile(`(?i)\bBATCH\s+(\d+)`)
	sequenceBatchTimeoutRE = regexp.MustCompile(`(?i)\bTIMEOUT\s+(\S+)`)
)

// ParseSequence parses a single `DEFINE SEQUENCE ...` DDL string into a
// *schema.Sequence. START, BATCH, and TIMEOUT clauses are all optional.
func ParseSequence(ddl string) (*schema.Sequence, error) {
	m := sequenceHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("sequence", ddl)
	}

	sq := &schema.Sequence{Name: unquoteIdent(m[1])}

	if mm := sequenceStartRE.FindStringSubmatch(ddl); mm != nil {
		n, _ := strconv.ParseInt(mm[1], 10, 64)
		sq.Start = &n
	}
	if mm := sequenceBatchSizeRE.FindStringSubmatch(ddl); mm != nil {
		n, _ := strconv.ParseInt(mm[1], 10, 64)
		sq.BatchSize = &n
	}
	if mm := sequenceBatchTimeoutRE.FindStringSubmatch(ddl); mm != nil {
		v := mm[1]
		sq.BatchTimeout = &v
	}

	return sq, nil
}

// ParseSequenceSafe never returns an error: a failure yields a Sequence
// flagged Unknown, carrying only its name.
func ParseSequenceSafe(ddl string) *schema.Sequence {
	sq, err := ParseSequence(ddl)
	if err == nil {
		return sq
	}
	return &schema.Sequence{Name: extractFallbackName(ddl, "SEQUENCE"), Unknown: true}
}
