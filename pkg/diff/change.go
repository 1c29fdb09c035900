// SPDX-License-Identifier: Apache-2.0

// Package diff compares two normalized schema.Schema trees and produces
// an ordered ChangeSet describing how to transform one into the other.
package diff

import "github.com/xataio/smig/pkg/schema"

// Op identifies the kind of transformation a Change represents.
type Op string

const (
	OpCreate   Op = "create"
	OpDrop     Op = "drop"
	OpModify   Op = "modify"
	OpRename   Op = "rename"
	OpRecreate Op = "recreate"
)

// EntityKind identifies which collection of the schema a Change belongs
// to.
type EntityKind string

const (
	EntityTable        EntityKind = "table"
	EntityRelation     EntityKind = "relation"
	EntityField        EntityKind = "field"
	EntityIndex        EntityKind = "index"
	EntityEvent        EntityKind = "event"
	EntityFunction     EntityKind = "function"
	EntityAnalyzer     EntityKind = "analyzer"
	EntityAccessMethod EntityKind = "access_method"
	EntityParam        EntityKind = "param"
	EntitySequence     EntityKind = "sequence"
)

// FieldDelta records which of a field's eight normalized dimensions
// differ between the desired and live copies, per §4.4.
type FieldDelta struct {
	Type        bool
	Readonly    bool
	Flexible    bool
	Default     bool
	Value       bool
	Assert      bool
	Permissions bool
	Comment     bool
}

// Any reports whether at least one dimension differs.
func (d FieldDelta) Any() bool {
	return d.Type || d.Readonly || d.Flexible || d.Default || d.Value || d.Assert || d.Permissions || d.Comment
}

// Change is a single typed edit to one entity.
type Change struct {
	Entity EntityKind
	Op     Op

	// Name is the entity's current (post-change) name.
	Name string
	// OldName is populated for Op == OpRename.
	OldName string
	// Table is the owning table name for field/index/event changes; empty
	// for top-level entities.
	Table string

	Desired any
	Live    any

	FieldDelta *FieldDelta
}

// ChangeSet is an ordered, deterministic sequence of Changes, built by
// Diff per the emission order in §4.4.
type ChangeSet struct {
	Changes []Change
}

// Empty reports whether the change set carries no edits.
func (cs *ChangeSet) Empty() bool {
	return cs == nil || len(cs.Changes) == 0
}

// Add appends a change to the set.
func (cs *ChangeSet) Add(c Change) {
	cs.Changes = append(cs.Changes, c)
}

// isUnknown reports whether an IR entity was flagged unknown by the
// introspection parser, in which case the differ only compares by name
// per §4.3 failure semantics.
func isUnknown(v any) bool {
	switch t := v.(type) {
	case *schema.Table:
		return t != nil && t.Unknown
	case *schema.Relation:
		return t != nil && t.Unknown
	case *schema.Field:
		return t != nil && t.Unknown
	case *schema.Index:
		return t != nil && t.Unknown
	case *schema.Event:
		return t != nil && t.Unknown
	case *schema.Function:
		return t != nil && t.Unknown
	case *schema.Analyzer:
		return t != nil && t.Unknown
	case *schema.AccessMethod:
		return t != nil && t.Unknown
	case *schema.Param:
		return t != nil && t.Unknown
	case *schema.Sequence:
		return t != nil && t.Unknown
	}
	return false
}
