// SPDX-License-Identifier: Apache-2.0

package schema

// Schemafulness controls whether a table accepts fields not declared in
// its schema.
type Schemafulness string

const (
	SchemaFull Schemafulness = "full"
	SchemaLess Schemafulness = "less"
)

// TableKind distinguishes a normal record table from an edge (graph) table
// or the permissive ANY kind.
type TableKind string

const (
	TableKindNormal TableKind = "normal"
	TableKindAny    TableKind = "any"
	TableKindEdge   TableKind = "edge"
)

// ChangeFeed configures the table's change-feed retention.
type ChangeFeed struct {
	Expiry          string
	IncludeOriginal bool
}

// Table is a table or relation entity in the IR. Relation embeds *Table
// and adds graph-edge semantics.
type Table struct {
	Name        string
	Schemaful   Schemafulness
	Kind        TableKind
	Drop        bool
	ChangeFeed  *ChangeFeed
	Permissions map[string]string // operation -> DDL expression
	Fields      []*Field          // declaration order
	Indexes     []*Index          // declaration order
	Events      []*Event          // declaration order
	Comments    []string
	Was         string // previous name, empty if none

	// Unknown is set by the introspection parser when a clause could not
	// be parsed; the differ compares such tables only by name.
	Unknown bool
}

// FieldByName returns the field with the given name, or nil.
func (t *Table) FieldByName(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IndexByName returns the index with the given name, or nil.
func (t *Table) IndexByName(name string) *Index {
	for _, idx := range t.Indexes {
		if idx.Name == name {
			return idx
		}
	}
	return nil
}

// EventByName returns the event with the given name, or nil.
func (t *Table) EventByName(name string) *Event {
	for _, e := range t.Events {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Relation is a table with graph-edge semantics: it connects a `from`
// table to a `to` table.
type Relation struct {
	*Table
	From     string
	To       string
	Enforced bool
}

// TableBuilder builds a Table (or, via RelationBuilder, a Relation)
// through chained modifier calls. Builder methods mutate the receiver and
// return it; Build() returns an immutable snapshot.
type TableBuilder struct {
	t *Table
}

// NewTable starts building a table named name.
func NewTable(name string) *TableBuilder {
	return &TableBuilder{t: &Table{
		Name:        name,
		Schemaful:   SchemaFull,
		Kind:        TableKindNormal,
		Permissions: map[string]string{},
	}}
}

func (b *TableBuilder) Schemafull() *TableBuilder { b.t.Schemaful = SchemaFull; return b }
func (b *TableBuilder) Schemaless() *TableBuilder { b.t.Schemaful = SchemaLess; return b }
func (b *TableBuilder) Any() *TableBuilder        { b.t.Kind = TableKindAny; return b }
func (b *TableBuilder) DropTable() *TableBuilder  { b.t.Drop = true; return b }

func (b *TableBuilder) Changefeed(expiry string, includeOriginal bool) *TableBuilder {
	b.t.ChangeFeed = &ChangeFeed{Expiry: expiry, IncludeOriginal: includeOriginal}
	return b
}

func (b *TableBuilder) Permission(op, expr string) *TableBuilder {
	b.t.Permissions[op] = expr
	return b
}

func (b *TableBuilder) Comment(c string) *TableBuilder {
	b.t.Comments = append(b.t.Comments, c)
	return b
}

func (b *TableBuilder) Was(name string) *TableBuilder {
	b.t.Was = name
	return b
}

func (b *TableBuilder) Field(f *FieldBuilder) *TableBuilder {
	b.t.Fields = append(b.t.Fields, f.Build())
	return b
}

func (b *TableBuilder) Index(i *IndexBuilder) *TableBuilder {
	b.t.Indexes = append(b.t.Indexes, i.Build())
	return b
}

func (b *TableBuilder) Event(e *EventBuilder) *TableBuilder {
	b.t.Events = append(b.t.Events, e.Build())
	return b
}

// Build returns an immutable snapshot of the table under construction.
func (b *TableBuilder) Build() *Table {
	t := *b.t
	t.Fields = append([]*Field(nil), b.t.Fields...)
	t.Indexes = append([]*Index(nil), b.t.Indexes...)
	t.Events = append([]*Event(nil), b.t.Events...)
	return &t
}

// RelationBuilder builds a Relation, which is a Table plus from/to edges.
type RelationBuilder struct {
	TableBuilder
	from, to string
	enforced bool
}

// NewRelation starts building a relation (edge table) named name.
func NewRelation(name string) *RelationBuilder {
	rb := &RelationBuilder{TableBuilder: *NewTable(name)}
	rb.t.Kind = TableKindEdge
	return rb
}

func (b *RelationBuilder) From(table string) *RelationBuilder { b.from = table; return b }
func (b *RelationBuilder) To(table string) *RelationBuilder   { b.to = table; return b }
func (b *RelationBuilder) Enforced() *RelationBuilder         { b.enforced = true; return b }

// Build returns an immutable snapshot of the relation under construction.
func (b *RelationBuilder) Build() *Relation {
	return &Relation{
		Table:    b.TableBuilder.Build(),
		From:     b.from,
		To:       b.to,
		Enforced: b.enforced,
	}
}
