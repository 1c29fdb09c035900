// SPDX-License-Identifier: Apache-2.0

package schema

// Analyzer is a named text-analysis pipeline (tokenizer + filters) used
// by SEARCH indexes.
type Analyzer struct {
	Name      string
	Tokenizer []string
	Filters   []string
	Function  string // custom tokenizer function name, empty if none
	Was       string

	Unknown bool
}

// AnalyzerBuilder builds an Analyzer through chained modifier calls.
type AnalyzerBuilder struct {
	a *Analyzer
}

// NewAnalyzer starts building an analyzer named name.
func NewAnalyzer(name string) *AnalyzerBuilder {
	return &AnalyzerBuilder{a: &Analyzer{Name: name}}
}

func (b *AnalyzerBuilder) Tokenizers(ts ...string) *AnalyzerBuilder {
	b.a.Tokenizer = append(b.a.Tokenizer, ts...)
	return b
}

func (b *AnalyzerBuilder) Filters(fs ...string) *AnalyzerBuilder {
	b.a.Filters = append(b.a.Filters, fs...)
	return b
}

func (b *AnalyzerBuilder) Function(name string) *AnalyzerBuilder {
	b.a.Function = name
	return b
}

func (b *AnalyzerBuilder) Was(name string) *AnalyzerBuilder {
	b.a.Was = name
	return b
}

// Build returns an immutable snapshot of the analyzer under construction.
func (b *AnalyzerBuilder) Build() *Analyzer {
	a := *b.a
	a.Tokenizer = append([]string(nil), b.a.Tokenizer...)
	a.Filters = append([]string(nil), b.a.Filters...)
	return &a
}
