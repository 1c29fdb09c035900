// SPDX-License-Identifier: Apache-2.0

package schema

import "fmt"

// OnDeleteAction is the action taken on a `references` field when the
// referenced record is deleted.
type OnDeleteAction string

const (
	OnDeleteCascade    OnDeleteAction = "CASCADE"
	OnDeleteSetNull    OnDeleteAction = "SET NULL"
	OnDeleteSetDefault OnDeleteAction = "SET DEFAULT"
	OnDeleteRestrict   OnDeleteAction = "RESTRICT"
)

// DefaultPermissions is the permissions string fields carry when none was
// explicitly requested.
const DefaultPermissions = "FULL"

// Field is a single table column in the IR.
type Field struct {
	Name string
	Type string // type expression, see typeexpr.go

	Optional      bool
	Readonly      bool
	Flexible      bool
	IfNotExists   bool
	Overwrite     bool
	DefaultAlways bool

	Default  string // literal or DDL expression
	Value    string // DDL expression, recomputed on every write
	Computed string // DDL expression, wrapped as a deferred block, read-only

	Assert []string // ordered, ANDed together

	Permissions string
	Comments    []string

	References *string // target table, nil if not a reference
	OnDelete   OnDeleteAction

	PreviousNames []string

	Unknown bool
}

// FieldBuilder builds a Field through chained modifier calls.
type FieldBuilder struct {
	f *Field
}

// NewField starts building a field of the given name and type expression.
func NewField(name, typeExpr string) *FieldBuilder {
	return &FieldBuilder{f: &Field{
		Name:        name,
		Type:        typeExpr,
		Permissions: DefaultPermissions,
	}}
}

func (b *FieldBuilder) Optional() *FieldBuilder      { b.f.Optional = true; return b }
func (b *FieldBuilder) Readonly() *FieldBuilder      { b.f.Readonly = true; return b }
func (b *FieldBuilder) Flexible() *FieldBuilder      { b.f.Flexible = true; return b }
func (b *FieldBuilder) IfNotExists() *FieldBuilder   { b.f.IfNotExists = true; return b }
func (b *FieldBuilder) Overwrite() *FieldBuilder     { b.f.Overwrite = true; return b }
func (b *FieldBuilder) DefaultAlways() *FieldBuilder { b.f.DefaultAlways = true; return b }

func (b *FieldBuilder) Default(v string) *FieldBuilder { b.f.Default = v; return b }
func (b *FieldBuilder) Value(v string) *FieldBuilder   { b.f.Value = v; return b }

// Computed stores expr wrapped as "{ <expr> }" into the field's value slot,
// marking it deferred-evaluated on read, per builder semantics in §4.1.
func (b *FieldBuilder) Computed(expr string) *FieldBuilder {
	b.f.Computed = fmt.Sprintf("{ %s }", expr)
	return b
}

func (b *FieldBuilder) Assert(cond string) *FieldBuilder {
	b.f.Assert = append(b.f.Assert, cond)
	return b
}

// Required is sugar for Assert("$value != NONE").
func (b *FieldBuilder) Required() *FieldBuilder {
	return b.Assert("$value != NONE")
}

func (b *FieldBuilder) Length(min int, max ...int) *FieldBuilder {
	b.Assert(fmt.Sprintf("string::len($value) >= %d", min))
	if len(max) > 0 {
		b.Assert(fmt.Sprintf("string::len($value) <= %d", max[0]))
	}
	return b
}

func (b *FieldBuilder) Range(min, max float64) *FieldBuilder {
	b.Assert(fmt.Sprintf("$value >= %v", min))
	b.Assert(fmt.Sprintf("$value <= %v", max))
	return b
}

func (b *FieldBuilder) Min(n float64) *FieldBuilder {
	return b.Assert(fmt.Sprintf("$value >= %v", n))
}

func (b *FieldBuilder) Max(n float64) *FieldBuilder {
	return b.Assert(fmt.Sprintf("$value <= %v", n))
}

func (b *FieldBuilder) Regex(re string) *FieldBuilder {
	return b.Assert(fmt.Sprintf("string::matches($value, %q)", re))
}

func (b *FieldBuilder) Permission(expr string) *FieldBuilder {
	b.f.Permissions = expr
	return b
}

func (b *FieldBuilder) Comment(c string) *FieldBuilder {
	b.f.Comments = append(b.f.Comments, c)
	return b
}

func (b *FieldBuilder) References(table string, onDelete OnDeleteAction) *FieldBuilder {
	b.f.References = &table
	b.f.OnDelete = onDelete
	return b
}

// Was appends one or more previous names to the field's rename history.
func (b *FieldBuilder) Was(names ...string) *FieldBuilder {
	b.f.PreviousNames = append(b.f.PreviousNames, names...)
	return b
}

// Build returns an immutable snapshot of the field under construction.
func (b *FieldBuilder) Build() *Field {
	f := *b.f
	f.Assert = append([]string(nil), b.f.Assert...)
	f.Comments = append([]string(nil), b.f.Comments...)
	f.PreviousNames = append([]string(nil), b.f.PreviousNames...)
	return &f
}

// CombinedAssert renders the field's assert list in canonical combined
// form: "(c1) AND (c2) AND ..." for more than one condition, or "c1" alone
// for exactly one. An empty list renders as the empty string.
func (f *Field) CombinedAssert() string {
	switch len(f.Assert) {
	case 0:
		return ""
	case 1:
		return f.Assert[0]
	default:
		out := ""
		for i, c := range f.Assert {
			if i > 0 {
				out += " AND "
			}
			out += "(" + c + ")"
		}
		return out
	}
}
