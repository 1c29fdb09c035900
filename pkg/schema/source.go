// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"plugin"
)

// Source is the schema source contract (§6.2): a schema module exports a
// root Schema IR. Anything outside this package that produces a *Schema
// for the engine to consume (a compiled Go plugin, a test fixture, a
// hand-built IR) satisfies this by construction — Source exists purely to
// name the contract at the package boundary.
type Source interface {
	Schema() (*Schema, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() (*Schema, error)

func (f SourceFunc) Schema() (*Schema, error) { return f() }

// LoadFromFile loads a schema module compiled as a Go plugin (.so) and
// returns its exported IR. The plugin must export a symbol named "Schema"
// of type *schema.Schema or func() (*schema.Schema, error). Loading
// schema files from arbitrary formats is deliberately out of scope for
// the core (§1); this is the thin default the CLI's --schema flag uses.
func LoadFromFile(path string) (*Schema, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading schema module %q: %w", path, err)
	}

	sym, err := p.Lookup("Schema")
	if err != nil {
		return nil, fmt.Errorf("schema module %q: missing exported Schema symbol: %w", path, err)
	}

	switch v := sym.(type) {
	case *Schema:
		return v, nil
	case func() (*Schema, error):
		return v()
	default:
		return nil, fmt.Errorf("schema module %q: exported Schema symbol has unexpected type %T", path, sym)
	}
}
