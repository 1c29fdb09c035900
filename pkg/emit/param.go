// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strconv"

	"github.com/xataio/smig/pkg/schema"
)

func defineParam(p *schema.Param, overwrite bool) string {
	parts := []string{"DEFINE PARAM"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, "$"+p.Name, "VALUE", p.Value)
	if p.Comment != "" {
		parts = append(parts, "COMMENT", quoteComment(p.Comment))
	}
	return joinClauses(parts...) + ";"
}

func removeParam(name string) string {
	return "REMOVE PARAM $" + name + ";"
}

// renameParamStatements renders a single native rename directive, per
// §4.4/§8: a param rename must never compile to a REMOVE+DEFINE pair.
func renameParamStatements(oldName string, p *schema.Param) string {
	return fmt.Sprintf("ALTER PARAM $%s RENAME TO $%s;", oldName, p.Name)
}

func defineSequence(s *schema.Sequence, overwrite bool) string {
	parts := []string{"DEFINE SEQUENCE"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, s.Name)
	if s.Start != nil {
		parts = append(parts, "START", strconv.FormatInt(*s.Start, 10))
	}
	if s.BatchSize != nil {
		parts = append(parts, "BATCH", strconv.FormatInt(*s.BatchSize, 10))
	}
	if s.BatchTimeout != nil {
		parts = append(parts, "TIMEOUT", *s.BatchTimeout)
	}
	return joinClauses(parts...) + ";"
}

func removeSequence(name string) string {
	return "REMOVE SEQUENCE " + name + ";"
}

// renameSequenceStatements renders a single native rename directive, per
// §4.4/§8: a sequence rename must never compile to a REMOVE+DEFINE pair.
func renameSequenceStatements(oldName string, s *schema.Sequence) string {
	return fmt.Sprintf("ALTER SEQUENCE %s RENAME TO %s;", oldName, s.Name)
}
