// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"fmt"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var tablePermOrder = []string{"select", "create", "update", "delete"}

func renderTablePermissions(perms map[string]string) string {
	var clauses []string
	for _, op := range tablePermOrder {
		if expr, ok := perms[op]; ok {
			clauses = append(clauses, fmt.Sprintf("FOR %s %s", op, expr))
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	return "PERMISSIONS " + strings.Join(clauses, " ")
}

func changeFeedClause(cf *schema.ChangeFeed) string {
	if cf == nil {
		return ""
	}
	clause := "CHANGEFEED " + cf.Expiry
	if cf.IncludeOriginal {
		clause += " INCLUDE ORIGINAL"
	}
	return clause
}

func schemafulClause(s schema.Schemafulness) string {
	if s == schema.SchemaLess {
		return "SCHEMALESS"
	}
	return "SCHEMAFULL"
}

func tableTail(t *schema.Table) []string {
	var tail []string
	if c := changeFeedClause(t.ChangeFeed); c != "" {
		tail = append(tail, c)
	}
	if p := renderTablePermissions(t.Permissions); p != "" {
		tail = append(tail, p)
	}
	for _, c := range t.Comments {
		tail = append(tail, "COMMENT", quoteComment(c))
	}
	return tail
}

// defineTable renders the header of a plain (non-edge) table. Its
// Fields/Indexes/Events are emitted as independent changes elsewhere in
// the set, except when reconstructing a dropped table wholesale for a
// down script, handled by defineTableDeep.
func defineTable(t *schema.Table, overwrite bool) string {
	kind := "NORMAL"
	if t.Kind == schema.TableKindAny {
		kind = "ANY"
	}
	parts := []string{"DEFINE TABLE"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, t.Name, "TYPE", kind, schemafulClause(t.Schemaful))
	parts = append(parts, tableTail(t)...)
	return joinClauses(parts...) + ";"
}

func defineRelation(r *schema.Relation, overwrite bool) string {
	parts := []string{"DEFINE TABLE"}
	if overwrite {
		parts = append(parts, "OVERWRITE")
	}
	parts = append(parts, r.Name, "TYPE RELATION", "IN", r.From, "OUT", r.To)
	if r.Enforced {
		parts = append(parts, "ENFORCED")
	}
	parts = append(parts, schemafulClause(r.Schemaful))
	parts = append(parts, tableTail(r.Table)...)
	return joinClauses(parts...) + ";"
}

func removeTable(name string) string {
	return "REMOVE TABLE " + name + ";"
}

// renameTableStatements renders a single native rename directive, per
// §4.4/§8: a table rename must never compile to a REMOVE+DEFINE pair.
func renameTableStatements(oldName string, t *schema.Table) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", oldName, t.Name)
}

func renameRelationStatements(oldName string, r *schema.Relation) string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", oldName, r.Name)
}

// defineTableDeep reconstructs a table's full definition, including its
// fields, indexes, and events, for the down script of a table drop: the
// forward ChangeSet carries no separate field/index/event entries for a
// table that never gets diffed because it is being dropped wholesale.
func defineTableDeep(t *schema.Table) string {
	var stmts []string
	stmts = append(stmts, defineTable(t, false))
	for _, f := range t.Fields {
		stmts = append(stmts, defineField(f, t.Name, false))
	}
	for _, idx := range t.Indexes {
		stmts = append(stmts, defineIndex(idx, t.Name, false))
	}
	for _, e := range t.Events {
		stmts = append(stmts, defineEvent(e, t.Name, false))
	}
	return strings.Join(stmts, "\n")
}

func defineRelationDeep(r *schema.Relation) string {
	var stmts []string
	stmts = append(stmts, defineRelation(r, false))
	for _, f := range r.Fields {
		stmts = append(stmts, defineField(f, r.Name, false))
	}
	for _, idx := range r.Indexes {
		stmts = append(stmts, defineIndex(idx, r.Name, false))
	}
	for _, e := range r.Events {
		stmts = append(stmts, defineEvent(e, r.Name, false))
	}
	return strings.Join(stmts, "\n")
}
