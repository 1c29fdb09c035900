// SPDX-License-Identifier: Apache-2.0

package schema

// Param is a named database-level variable.
type Param struct {
	Name    string // without the variable sigil
	Value   string // DDL expression
	Comment string
	Was     string

	Unknown bool
}

// ParamBuilder builds a Param through chained modifier calls.
type ParamBuilder struct {
	p *Param
}

// NewParam starts building a param named name with the given value
// expression.
func NewParam(name, value string) *ParamBuilder {
	return &ParamBuilder{p: &Param{Name: name, Value: value}}
}

func (b *ParamBuilder) Comment(c string) *ParamBuilder {
	b.p.Comment = c
	return b
}

func (b *ParamBuilder) Was(name string) *ParamBuilder {
	b.p.Was = name
	return b
}

// Build returns an immutable snapshot of the param under construction.
func (b *ParamBuilder) Build() *Param {
	p := *b.p
	return &p
}

// Sequence is a named counter with an optional start value, batch size,
// and batch timeout.
type Sequence struct {
	Name         string
	Start        *int64
	BatchSize    *int64
	BatchTimeout *string
	Was          string

	Unknown bool
}

// SequenceBuilder builds a Sequence through chained modifier calls.
type SequenceBuilder struct {
	s *Sequence
}

// NewSequence starts building a sequence named name.
func NewSequence(name string) *SequenceBuilder {
	return &SequenceBuilder{s: &Sequence{Name: name}}
}

func (b *SequenceBuilder) Start(n int64) *SequenceBuilder {
	b.s.Start = &n
	return b
}

func (b *SequenceBuilder) BatchSize(n int64) *SequenceBuilder {
	b.s.BatchSize = &n
	return b
}

func (b *SequenceBuilder) BatchTimeout(d string) *SequenceBuilder {
	b.s.BatchTimeout = &d
	return b
}

func (b *SequenceBuilder) Was(name string) *SequenceBuilder {
	b.s.Was = name
	return b
}

// Build returns an immutable snapshot of the sequence under construction.
func (b *SequenceBuilder) Build() *Sequence {
	s := *b.s
	return &s
}
