// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	indexHeaderRE     = regexp.MustCompile(`(?is)^DEFINE\s+INDEX\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)\s+ON\s+(?:TABLE\s+)?(\S+)`)
	indexFieldsRE     = regexp.MustCompile(`(?is)\bFIELDS\s+(.+?)(?:\s+(?:UNIQUE|SEARCH|FULLTEXT|HASH|MTREE|HNSW|CONCURRENTLY|COMMENT)\b|$)`)
	dimensionRE       = regexp.MustCompile(`(?i)\bDIMENSION\s+(\d+)`)
	distRE            = regexp.MustCompile(`(?i)\bDIST\s+(\S+)`)
	capacityRE        = regexp.MustCompile(`(?i)\bCAPACITY\s+(\d+)`)
	efcRE             = regexp.MustCompile(`(?i)\bEFC\s+(\d+)`)
	mValRE            = regexp.MustCompile(`(?i)\bM\s+(\d+)\b`)
	m0ValRE           = regexp.MustCompile(`(?i)\bM0\s+(\d+)`)
	lmValRE           = regexp.MustCompile(`(?i)\bLM\s+([\d.]+)`)
	analyzerRE        = regexp.MustCompile(`(?i)\bANALYZER\s+(\S+)`)
	bm25RE            = regexp.MustCompile(`(?i)\bBM25(?:\(([\d.]+)\s*,\s*([\d.]+)\))?`)
	docIDsCacheRE     = regexp.MustCompile(`(?i)\bDOC_IDS_CACHE\s+(\d+)`)
	docLengthsCacheRE = regexp.MustCompile(`(?i)\bDOC_LENGTHS_CACHE\s+(\d+)`)
	postingsCacheRE   = regexp.MustCompile(`(?i)\bPOSTINGS_CACHE\s+(\d+)`)
	termsCacheRE      = regexp.MustCompile(`(?i)\bTERMS_CACHE\s+(\d+)`)
	indexCommentRE    = regexp.MustCompile(`(?is)\bCOMMENT\s+(.+)$`)
)

// ParseIndex parses a single `DEFINE INDEX ...` DDL string into a
// *schema.Index.
func ParseIndex(ddl string) (*schema.Index, error) {
	m := indexHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("index", ddl)
	}

	idx := &schema.Index{
		Name: unquoteIdent(m[1]),
		Kind: schema.IndexBTree,
	}

	if mm := indexFieldsRE.FindStringSubmatch(ddl); mm != nil {
		for _, c := range strings.Split(mm[1], ",") {
			idx.Columns = append(idx.Columns, strings.TrimSpace(c))
		}
	}

	upper := strings.ToUpper(ddl)
	idx.Unique = containsWord(upper, "UNIQUE")
	idx.Concurrently = containsWord(upper, "CONCURRENTLY")
	idx.IfNotExists = regexp.MustCompile(`(?i)\bIF\s+NOT\s+EXISTS\b`).MatchString(ddl)
	idx.Overwrite = containsWord(upper, "OVERWRITE")

	switch {
	case containsWord(upper, "SEARCH") || containsWord(upper, "FULLTEXT"):
		idx.Kind = schema.IndexSearch
		if mm := analyzerRE.FindStringSubmatch(ddl); mm != nil {
			idx.Analyzer = unquoteIdent(mm[1])
		}
		idx.Highlights = containsWord(upper, "HIGHLIGHTS")
		if mm := bm25RE.FindStringSubmatch(ddl); mm != nil {
			k1, b := 1.2, 0.75
			if mm[1] != "" {
				k1, _ = strconv.ParseFloat(mm[1], 64)
			}
			if mm[2] != "" {
				b, _ = strconv.ParseFloat(mm[2], 64)
			}
			idx.BM25 = &schema.BM25Params{K1: k1, B: b}
		}
		if mm := docIDsCacheRE.FindStringSubmatch(ddl); mm != nil {
			idx.DocIDsCache, _ = strconv.Atoi(mm[1])
		}
		if mm := docLengthsCacheRE.FindStringSubmatch(ddl); mm != nil {
			idx.DocLengthsCache, _ = strconv.Atoi(mm[1])
		}
		if mm := postingsCacheRE.FindStringSubmatch(ddl); mm != nil {
			idx.PostingsCache, _ = strconv.Atoi(mm[1])
		}
		if mm := termsCacheRE.FindStringSubmatch(ddl); mm != nil {
			idx.TermsCache, _ = strconv.Atoi(mm[1])
		}
	case containsWord(upper, "HASH"):
		idx.Kind = schema.IndexHash
	case containsWord(upper, "MTREE"):
		idx.Kind = schema.IndexMTree
		parseVectorParams(ddl, idx)
		if mm := capacityRE.FindStringSubmatch(ddl); mm != nil {
			idx.Capacity, _ = strconv.Atoi(mm[1])
		}
	case containsWord(upper, "HNSW"):
		idx.Kind = schema.IndexHNSW
		parseVectorParams(ddl, idx)
		if mm := efcRE.FindStringSubmatch(ddl); mm != nil {
			idx.EFC, _ = strconv.Atoi(mm[1])
		}
		if mm := mValRE.FindStringSubmatch(ddl); mm != nil {
			idx.M, _ = strconv.Atoi(mm[1])
		}
		if mm := m0ValRE.FindStringSubmatch(ddl); mm != nil {
			idx.M0, _ = strconv.Atoi(mm[1])
		}
		if mm := lmValRE.FindStringSubmatch(ddl); mm != nil {
			idx.LM, _ = strconv.ParseFloat(mm[1], 64)
		}
	}

	if mm := indexCommentRE.FindStringSubmatch(ddl); mm != nil {
		idx.Comments = append(idx.Comments, unquoteString(strings.TrimSpace(mm[1])))
	}

	return idx, nil
}

func parseVectorParams(ddl string, idx *schema.Index) {
	if mm := dimensionRE.FindStringSubmatch(ddl); mm != nil {
		idx.Dimension, _ = strconv.Atoi(mm[1])
	}
	if mm := distRE.FindStringSubmatch(ddl); mm != nil {
		idx.Dist = schema.DistanceFunction(strings.ToUpper(mm[1]))
	}
}

// ParseIndexSafe never returns an error: a failure yields an Index
// flagged Unknown, carrying only its name.
func ParseIndexSafe(ddl string) *schema.Index {
	idx, err := ParseIndex(ddl)
	if err == nil {
		return idx
	}
	return &schema.Index{Name: extractFallbackName(ddl, "INDEX"), Unknown: true}
}
