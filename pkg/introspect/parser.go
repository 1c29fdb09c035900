// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

// Warning is recorded in Parser.Warnings for each DDL string the parser
// could not recognize. The ledger receives them from fetchLive and
// discards them; nothing logs them.
type Warning struct {
	Entity string
	DDL    string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("introspect: could not fully parse %s: %s", w.Entity, w.Reason)
}

func errUnrecognized(entity, ddl string) error {
	return fmt.Errorf("unrecognized %s DDL: %q", entity, truncate(ddl, 80))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func unquoteIdent(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' {
		return s[1 : len(s)-1]
	}
	if strings.HasPrefix(s, "⟨") && strings.HasSuffix(s, "⟩") {
		return strings.TrimSuffix(strings.TrimPrefix(s, "⟨"), "⟩")
	}
	return s
}

func unquoteString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && ((s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"')) {
		return s[1 : len(s)-1]
	}
	return s
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(s, word string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(s)
}

// Parser parses a full `INFO FOR TABLE <t>` / `INFO FOR DB` response
// into a *schema.Schema. It is the entry point for C3; each DEFINE
// statement is dispatched to the matching per-entity extractor.
type Parser struct {
	Warnings []Warning
}

// NewParser returns a Parser with no accumulated warnings.
func NewParser() *Parser {
	return &Parser{}
}

// ParseDatabase parses the combined set of top-level DEFINE statements
// returned by `INFO FOR DB` (functions, analyzers, access methods,
// params, sequences, and the bare table/relation headers — field,
// index, and event detail comes from ParseTable) into a *schema.Schema.
func (p *Parser) ParseDatabase(defineStatements []string) *schema.Schema {
	s := schema.New()

	for _, stmt := range defineStatements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		upper := strings.ToUpper(stmt)
		switch {
		case strings.HasPrefix(upper, "DEFINE FUNCTION"):
			fn := p.parseFunctionSafe(stmt)
			s.Functions[fn.Name] = fn
		case strings.HasPrefix(upper, "DEFINE ANALYZER"):
			an := p.parseAnalyzerSafe(stmt)
			s.Analyzers[an.Name] = an
		case strings.HasPrefix(upper, "DEFINE ACCESS"):
			am := p.parseAccessMethodSafe(stmt)
			s.AccessMethods[am.Name] = am
		case strings.HasPrefix(upper, "DEFINE PARAM"):
			pm := p.parseParamSafe(stmt)
			s.Params[pm.Name] = pm
		case strings.HasPrefix(upper, "DEFINE SEQUENCE"):
			sq := p.parseSequenceSafe(stmt)
			s.Sequences[sq.Name] = sq
		case strings.HasPrefix(upper, "DEFINE TABLE"):
			t, isRelation := p.parseTableHeaderSafe(stmt)
			if isRelation {
				s.Relations[t.Name] = &schema.Relation{Table: t}
			} else {
				s.Tables[t.Name] = t
			}
		}
	}

	return s
}

// ParseTable merges the field/index/event detail returned by
// `INFO FOR TABLE <t>` into table, an already-registered table header
// (from ParseDatabase). table must be non-nil; ParseTable does not
// construct one.
func (p *Parser) ParseTable(table *schema.Table, defineStatements []string) {
	for _, stmt := range defineStatements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		upper := strings.ToUpper(stmt)
		switch {
		case strings.HasPrefix(upper, "DEFINE FIELD"):
			if _, err := ParseField(stmt); err != nil {
				p.warn("field", stmt, err)
			}
			table.Fields = append(table.Fields, ParseFieldSafe(stmt))
		case strings.HasPrefix(upper, "DEFINE INDEX"):
			if _, err := ParseIndex(stmt); err != nil {
				p.warn("index", stmt, err)
			}
			table.Indexes = append(table.Indexes, ParseIndexSafe(stmt))
		case strings.HasPrefix(upper, "DEFINE EVENT"):
			if _, err := ParseEvent(stmt); err != nil {
				p.warn("event", stmt, err)
			}
			table.Events = append(table.Events, ParseEventSafe(stmt))
		}
	}
}

func (p *Parser) warn(entity, ddl string, err error) {
	p.Warnings = append(p.Warnings, Warning{Entity: entity, DDL: ddl, Reason: err.Error()})
}

func (p *Parser) parseFunctionSafe(stmt string) *schema.Function {
	fn, err := ParseFunction(stmt)
	if err != nil {
		p.warn("function", stmt, err)
		return &schema.Function{Name: extractFallbackName(stmt, "FUNCTION"), Unknown: true}
	}
	return fn
}

func (p *Parser) parseAnalyzerSafe(stmt string) *schema.Analyzer {
	an, err := ParseAnalyzer(stmt)
	if err != nil {
		p.warn("analyzer", stmt, err)
		return &schema.Analyzer{Name: extractFallbackName(stmt, "ANALYZER"), Unknown: true}
	}
	return an
}

func (p *Parser) parseAccessMethodSafe(stmt string) *schema.AccessMethod {
	am, err := ParseAccessMethod(stmt)
	if err != nil {
		p.warn("access method", stmt, err)
		return &schema.AccessMethod{Name: extractFallbackName(stmt, "ACCESS"), Unknown: true}
	}
	return am
}

func (p *Parser) parseParamSafe(stmt string) *schema.Param {
	pm, err := ParseParam(stmt)
	if err != nil {
		p.warn("param", stmt, err)
		return &schema.Param{Name: extractFallbackName(stmt, "PARAM"), Unknown: true}
	}
	return pm
}

func (p *Parser) parseSequenceSafe(stmt string) *schema.Sequence {
	sq, err := ParseSequence(stmt)
	if err != nil {
		p.warn("sequence", stmt, err)
		return &schema.Sequence{Name: extractFallbackName(stmt, "SEQUENCE"), Unknown: true}
	}
	return sq
}

func (p *Parser) parseTableHeaderSafe(stmt string) (*schema.Table, bool) {
	t, isRelation, err := ParseTableHeader(stmt)
	if err != nil {
		p.warn("table", stmt, err)
		return &schema.Table{Name: extractFallbackName(stmt, "TABLE"), Unknown: true}, false
	}
	return t, isRelation
}

func extractFallbackName(stmt, kind string) string {
	re := regexp.MustCompile(fmt.Sprintf(`(?is)DEFINE\s+%s\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)`, kind))
	if m := re.FindStringSubmatch(stmt); m != nil {
		return unquoteIdent(m[1])
	}
	return "?"
}
