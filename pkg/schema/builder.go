// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
)

// Builder assembles a Schema from entity builders. It mirrors the
// collection-of-factories shape of the IR: each Add* call registers one
// built entity; Build() validates uniqueness invariants and returns the
// immutable Schema.
type Builder struct {
	schema *Schema
	errs   []error
}

// NewBuilder returns an empty schema Builder.
func NewBuilder() *Builder {
	return &Builder{schema: New()}
}

func (b *Builder) AddTable(t *TableBuilder) *Builder {
	tbl := t.Build()
	if err := validateIdentifier(tbl.Name); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if _, exists := b.schema.Tables[tbl.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate table %q", tbl.Name))
		return b
	}
	b.schema.Tables[tbl.Name] = tbl
	return b
}

func (b *Builder) AddRelation(r *RelationBuilder) *Builder {
	rel := r.Build()
	if err := validateIdentifier(rel.Name); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if _, exists := b.schema.Relations[rel.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate relation %q", rel.Name))
		return b
	}
	b.schema.Relations[rel.Name] = rel
	return b
}

func (b *Builder) AddFunction(f *FunctionBuilder) *Builder {
	fn := f.Build()
	if _, exists := b.schema.Functions[fn.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate function %q", fn.Name))
		return b
	}
	b.schema.Functions[fn.Name] = fn
	return b
}

func (b *Builder) AddAnalyzer(a *AnalyzerBuilder) *Builder {
	an := a.Build()
	if _, exists := b.schema.Analyzers[an.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate analyzer %q", an.Name))
		return b
	}
	b.schema.Analyzers[an.Name] = an
	return b
}

func (b *Builder) AddAccessMethod(a *AccessMethodBuilder) *Builder {
	am := a.Build()
	if _, exists := b.schema.AccessMethods[am.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate access method %q", am.Name))
		return b
	}
	b.schema.AccessMethods[am.Name] = am
	return b
}

func (b *Builder) AddParam(p *ParamBuilder) *Builder {
	pm := p.Build()
	if _, exists := b.schema.Params[pm.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate param %q", pm.Name))
		return b
	}
	b.schema.Params[pm.Name] = pm
	return b
}

func (b *Builder) AddSequence(s *SequenceBuilder) *Builder {
	sq := s.Build()
	if _, exists := b.schema.Sequences[sq.Name]; exists {
		b.errs = append(b.errs, fmt.Errorf("duplicate sequence %q", sq.Name))
		return b
	}
	b.schema.Sequences[sq.Name] = sq
	return b
}

// Build validates the assembled schema's invariants (§3.3) and returns it.
// Validation here is minimal and structural; deeper semantic validation
// (e.g. existence of referenced tables) is left to the database at apply
// time, per §4.1.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("schema build: %w", errors.Join(b.errs...))
	}
	if err := validateRenames(b.schema); err != nil {
		return nil, err
	}
	if err := validateSearchIndexAnalyzers(b.schema); err != nil {
		return nil, err
	}
	return b.schema, nil
}

func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("identifier must not be empty")
	}
	if len(name) > 128 {
		return fmt.Errorf("identifier %q exceeds maximum length", name)
	}
	return nil
}

// validateRenames enforces that a table's `was` and a field's
// `previousNames` never collide with a currently desired name in the same
// scope (§3.3).
func validateRenames(s *Schema) error {
	for name, t := range s.Tables {
		if t.Was != "" {
			if _, exists := s.Tables[t.Was]; exists && t.Was != name {
				return fmt.Errorf("table %q: was-name %q collides with a current table", name, t.Was)
			}
		}
		fieldNames := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			fieldNames[f.Name] = true
		}
		for _, f := range t.Fields {
			for _, prev := range f.PreviousNames {
				if fieldNames[prev] && prev != f.Name {
					return fmt.Errorf("table %q field %q: previous name %q collides with a current field", name, f.Name, prev)
				}
			}
		}
	}
	return nil
}

// validateSearchIndexAnalyzers enforces that any SEARCH index references
// an analyzer that exists in the same schema (§3.3).
func validateSearchIndexAnalyzers(s *Schema) error {
	check := func(table string, indexes []*Index) error {
		for _, idx := range indexes {
			if idx.Kind != IndexSearch {
				continue
			}
			if _, ok := s.Analyzers[idx.Analyzer]; !ok {
				return fmt.Errorf("table %q index %q: unknown analyzer %q", table, idx.Name, idx.Analyzer)
			}
		}
		return nil
	}
	for name, t := range s.Tables {
		if err := check(name, t.Indexes); err != nil {
			return err
		}
	}
	for name, r := range s.Relations {
		if err := check(name, r.Indexes); err != nil {
			return err
		}
	}
	return nil
}
