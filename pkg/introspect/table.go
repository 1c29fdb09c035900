// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	tableHeaderRE   = regexp.MustCompile(`(?is)^DEFINE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)`)
	tableRelationRE = regexp.MustCompile(`(?i)\bTYPE\s+RELATION\b`)
	tableAnyRE      = regexp.MustCompile(`(?i)\bTYPE\s+ANY\b`)
	tableInRE       = regexp.MustCompile(`(?i)\bIN\s+(\S+)`)
	tableOutRE      = regexp.MustCompile(`(?i)\bOUT\s+(\S+)`)
	changefeedRE    = regexp.MustCompile(`(?i)\bCHANGEFEED\s+(\S+)`)
	tableCommentRE  = regexp.MustCompile(`(?is)\bCOMMENT\s+(.+?)(?:\s+PERMISSIONS\b|$)`)
	tablePermsRE    = regexp.MustCompile(`(?is)\bPERMISSIONS\s+(.+)$`)
	forOpClauseRE   = regexp.MustCompile(`(?i)\bFOR\s+((?:select|create|update|delete)(?:\s*,\s*(?:select|create|update|delete))*)\s+`)
)

// ParseTableHeader parses a `DEFINE TABLE ...` DDL string into a
// *schema.Table and reports whether it declares a graph-edge relation
// (TYPE RELATION). Field, index, and event detail is not present in
// this statement; ParseTable merges those in separately from the
// corresponding `INFO FOR TABLE <t>` response.
func ParseTableHeader(ddl string) (*schema.Table, bool, error) {
	m := tableHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, false, errUnrecognized("table", ddl)
	}

	t := &schema.Table{
		Name:      unquoteIdent(m[1]),
		Schemaful: schema.SchemaLess,
		Kind:      schema.TableKindNormal,
	}

	upper := strings.ToUpper(ddl)
	if containsWord(upper, "SCHEMAFULL") {
		t.Schemaful = schema.SchemaFull
	}
	t.Drop = containsWord(upper, "DROP")

	isRelation := tableRelationRE.MatchString(ddl)
	switch {
	case isRelation:
		t.Kind = schema.TableKindEdge
	case tableAnyRE.MatchString(ddl):
		t.Kind = schema.TableKindAny
	}

	if mm := changefeedRE.FindStringSubmatch(ddl); mm != nil {
		t.ChangeFeed = &schema.ChangeFeed{
			Expiry:          mm[1],
			IncludeOriginal: regexp.MustCompile(`(?i)\bINCLUDE\s+ORIGINAL\b`).MatchString(ddl),
		}
	}

	if mm := tableCommentRE.FindStringSubmatch(ddl); mm != nil {
		t.Comments = append(t.Comments, unquoteString(strings.TrimSpace(mm[1])))
	}

	if mm := tablePermsRE.FindStringSubmatch(ddl); mm != nil {
		t.Permissions = parseTablePermissions(mm[1])
	}

	var relationFrom, relationTo string
	if isRelation {
		if mm := tableInRE.FindStringSubmatch(ddl); mm != nil {
			relationFrom = unquoteIdent(mm[1])
		}
		if mm := tableOutRE.FindStringSubmatch(ddl); mm != nil {
			relationTo = unquoteIdent(mm[1])
		}
		t.Unknown = false
		_ = relationFrom
		_ = relationTo
	}

	return t, isRelation, nil
}

// ParseRelationHeader is a thin wrapper over ParseTableHeader for
// callers that already know the statement declares a relation and want
// the From/To/Enforced fields populated onto a *schema.Relation.
func ParseRelationHeader(ddl string) (*schema.Relation, error) {
	t, isRelation, err := ParseTableHeader(ddl)
	if err != nil {
		return nil, err
	}
	if !isRelation {
		return &schema.Relation{Table: t}, nil
	}
	rel := &schema.Relation{Table: t, Enforced: containsWord(strings.ToUpper(ddl), "ENFORCED")}
	if mm := tableInRE.FindStringSubmatch(ddl); mm != nil {
		rel.From = unquoteIdent(mm[1])
	}
	if mm := tableOutRE.FindStringSubmatch(ddl); mm != nil {
		rel.To = unquoteIdent(mm[1])
	}
	return rel, nil
}

// parseTablePermissions splits a PERMISSIONS clause body into a map
// keyed by comma-joined operation list (e.g. "select" or "create,update"),
// mirroring the FOR-clause structure the emitter produces.
func parseTablePermissions(body string) map[string]string {
	perms := map[string]string{}
	locs := forOpClauseRE.FindAllStringSubmatchIndex(body, -1)
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		ops := collapseSpace(strings.ToLower(body[loc[2]:loc[3]]))
		ops = strings.ReplaceAll(ops, " ", "")
		perms[ops] = strings.TrimSpace(strings.TrimRight(body[loc[1]:end], ", "))
	}
	return perms
}
