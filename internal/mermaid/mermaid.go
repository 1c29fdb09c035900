// SPDX-License-Identifier: Apache-2.0

// Package mermaid renders a schema.Schema as a Mermaid entity-relationship
// diagram. It is a thin consumer of the core IR's exported types only,
// kept outside pkg/ per §6.3's "collaborator, not core" treatment of
// diagram generation.
package mermaid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

// Render returns a Mermaid `erDiagram` block describing s: one entity per
// table and relation, one connector per relation's from/to edge.
func Render(s *schema.Schema) string {
	var b strings.Builder
	b.WriteString("erDiagram\n")

	for _, name := range sortedKeys(s.Tables) {
		renderEntity(&b, name, s.Tables[name].Fields)
	}
	for _, name := range sortedKeys(s.Relations) {
		renderEntity(&b, name, s.Relations[name].Fields)
	}
	for _, name := range sortedKeys(s.Relations) {
		r := s.Relations[name]
		if r.From == "" || r.To == "" {
			continue
		}
		connector := "}o--o{"
		if r.Enforced {
			connector = "||--o{"
		}
		fmt.Fprintf(&b, "    %s %s %s : %q\n", sanitize(r.From), connector, sanitize(r.To), name)
	}

	return b.String()
}

func renderEntity(b *strings.Builder, name string, fields []*schema.Field) {
	fmt.Fprintf(b, "    %s {\n", sanitize(name))
	for _, f := range fields {
		fmt.Fprintf(b, "        %s %s\n", mermaidType(f.Type), sanitize(f.Name))
	}
	b.WriteString("    }\n")
}

// mermaidType strips generic/union punctuation Mermaid's ER grammar
// cannot parse as a field type token, keeping just a readable base name.
func mermaidType(t string) string {
	t = strings.TrimSpace(t)
	if i := strings.IndexAny(t, "<|"); i >= 0 {
		t = t[:i]
	}
	t = strings.TrimSpace(t)
	if t == "" {
		return "any"
	}
	return t
}

// sanitize makes an identifier safe for Mermaid's unquoted entity-name
// grammar, which forbids most punctuation.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
