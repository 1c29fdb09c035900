// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

func indexKindClause(idx *schema.Index) string {
	switch idx.Kind {
	case schema.IndexHash:
		return "HASH"
	case schema.IndexSearch:
		clause := "FULLTEXT ANALYZER " + idx.Analyzer
		if idx.Highlights {
			clause += " HIGHLIGHTS"
		}
		if idx.BM25 != nil {
			clause += fmt.Sprintf(" BM25(%s, %s)", formatFloat(idx.BM25.K1), formatFloat(idx.BM25.B))
		}
		if idx.DocIDsCache != 0 {
			clause += fmt.Sprintf(" DOC_IDS_CACHE %d", idx.DocIDsCache)
		}
		if idx.DocLengthsCache != 0 {
			clause += fmt.Sprintf(" DOC_LENGTHS_CACHE %d", idx.DocLengthsCache)
		}
		if idx.PostingsCache != 0 {
			clause += fmt.Sprintf(" POSTINGS_CACHE %d", idx.PostingsCache)
		}
		if idx.TermsCache != 0 {
			clause += fmt.Sprintf(" TERMS_CACHE %d", idx.TermsCache)
		}
		return clause
	case schema.IndexMTree:
		return fmt.Sprintf("MTREE DIMENSION %d DIST %s CAPACITY %d", idx.Dimension, idx.Dist, idx.Capacity)
	case schema.IndexHNSW:
		clause := fmt.Sprintf("HNSW DIMENSION %d DIST %s", idx.Dimension, idx.Dist)
		if idx.EFC != 0 {
			clause += fmt.Sprintf(" EFC %d", idx.EFC)
		}
		if idx.M != 0 {
			clause += fmt.Sprintf(" M %d", idx.M)
		}
		if idx.M0 != 0 {
			clause += fmt.Sprintf(" M0 %d", idx.M0)
		}
		if idx.LM != 0 {
			clause += fmt.Sprintf(" LM %s", formatFloat(idx.LM))
		}
		return clause
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func defineIndex(idx *schema.Index, table string, overwrite bool) string {
	parts := []string{"DEFINE INDEX"}
	switch {
	case overwrite:
		parts = append(parts, "OVERWRITE")
	case idx.IfNotExists:
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, idx.Name, "ON TABLE", table, "FIELDS", strings.Join(idx.Columns, ", "))
	if idx.Unique {
		parts = append(parts, "UNIQUE")
	}
	if kind := indexKindClause(idx); kind != "" {
		parts = append(parts, kind)
	}
	if idx.Concurrently {
		parts = append(parts, "CONCURRENTLY")
	}
	for _, c := range idx.Comments {
		parts = append(parts, "COMMENT", quoteComment(c))
	}
	return joinClauses(parts...) + ";"
}

func removeIndex(name, table string) string {
	return fmt.Sprintf("REMOVE INDEX %s ON TABLE %s;", name, table)
}

// renameIndexStatements renders a single native rename directive, per
// §4.4/§8: an index rename must never compile to a REMOVE+DEFINE pair.
func renameIndexStatements(table, oldName string, idx *schema.Index) string {
	return fmt.Sprintf("ALTER INDEX %s ON TABLE %s RENAME TO %s;", oldName, table, idx.Name)
}

// recreateIndexStatements drops and redefines an index whose columns,
// uniqueness, kind, or kind-specific parameters changed: those
// attributes are immutable once an index exists, per §4.4.
func recreateIndexStatements(name, table string, idx *schema.Index) string {
	return removeIndex(name, table) + "\n" + defineIndex(idx, table, false)
}
