// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

func defineAnalyzer(a *schema.Analyzer, overwrite bool) string {
	parts := []string{"DEFINE ANALYZER"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, a.Name)
	if len(a.Tokenizer) > 0 {
		parts = append(parts, "TOKENIZERS", strings.Join(a.Tokenizer, ","))
	}
	if len(a.Filters) > 0 {
		parts = append(parts, "FILTERS", strings.Join(a.Filters, ","))
	}
	if a.Function != "" {
		parts = append(parts, "FUNCTION", a.Function)
	}
	return joinClauses(parts...) + ";"
}

func removeAnalyzer(name string) string {
	return "REMOVE ANALYZER " + name + ";"
}

// renameAnalyzerStatements renders a single native rename directive, per
// §4.4/§8: an analyzer rename must never compile to a REMOVE+DEFINE pair.
func renameAnalyzerStatements(oldName string, a *schema.Analyzer) string {
	return fmt.Sprintf("ALTER ANALYZER %s RENAME TO %s;", oldName, a.Name)
}
