// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"sort"

	"github.com/xataio/smig/pkg/schema"
)

func wasSingle(w string) []string {
	if w == "" {
		return nil
	}
	return []string{w}
}

func noDrop[T any](T) bool { return false }

// Diff compares desired against live and returns an ordered ChangeSet
// following the emission order of §4.4: drops (tables, relations,
// functions, analyzers, access methods, params, sequences), then
// analyzers, then tables/relations, then fields, then indexes, then
// events, then functions/access methods/params/sequences.
//
// Both inputs are canonicalized internally; callers do not need to
// normalize beforehand. If any `was`/`previousNames` hint is ambiguous
// because both the old and new names exist live (§7), Diff returns a
// *RenameConflictError and no ChangeSet rather than silently dropping
// the orphaned old-named entity.
func Diff(desired, live *schema.Schema) (*ChangeSet, error) {
	d := canonicalize(desired)
	l := canonicalize(live)

	cs := &ChangeSet{}
	var conflicts []RenameConflict

	tableMatches := matchKind(EntityTable, d.Tables, l.Tables, entityOps[*schema.Table]{
		was:   func(t *schema.Table) []string { return wasSingle(t.Was) },
		drop:  func(t *schema.Table) bool { return t.Drop },
		equal: tableHeaderEqual,
	}, &conflicts)
	relMatches := matchKind(EntityRelation, d.Relations, l.Relations, entityOps[*schema.Relation]{
		was:   func(r *schema.Relation) []string { return wasSingle(r.Was) },
		drop:  func(r *schema.Relation) bool { return r.Drop },
		equal: relationHeaderEqual,
	}, &conflicts)
	fnMatches := matchKind(EntityFunction, d.Functions, l.Functions, entityOps[*schema.Function]{
		was:   func(f *schema.Function) []string { return wasSingle(f.Was) },
		drop:  noDrop[*schema.Function],
		equal: functionEqual,
	}, &conflicts)
	anMatches := matchKind(EntityAnalyzer, d.Analyzers, l.Analyzers, entityOps[*schema.Analyzer]{
		was:   func(a *schema.Analyzer) []string { return wasSingle(a.Was) },
		drop:  noDrop[*schema.Analyzer],
		equal: analyzerEqual,
	}, &conflicts)
	amMatches := matchKind(EntityAccessMethod, d.AccessMethods, l.AccessMethods, entityOps[*schema.AccessMethod]{
		was:   func(a *schema.AccessMethod) []string { return wasSingle(a.Was) },
		drop:  noDrop[*schema.AccessMethod],
		equal: accessMethodEqual,
	}, &conflicts)
	pmMatches := matchKind(EntityParam, d.Params, l.Params, entityOps[*schema.Param]{
		was:   func(p *schema.Param) []string { return wasSingle(p.Was) },
		drop:  noDrop[*schema.Param],
		equal: paramEqual,
	}, &conflicts)
	sqMatches := matchKind(EntitySequence, d.Sequences, l.Sequences, entityOps[*schema.Sequence]{
		was:   func(s *schema.Sequence) []string { return wasSingle(s.Was) },
		drop:  noDrop[*schema.Sequence],
		equal: sequenceEqual,
	}, &conflicts)

	// Step 3: drops, reverse-dependency order.
	appendDrops(cs, EntityTable, tableMatches)
	appendDrops(cs, EntityRelation, relMatches)
	appendDrops(cs, EntityFunction, fnMatches)
	appendDrops(cs, EntityAnalyzer, anMatches)
	appendDrops(cs, EntityAccessMethod, amMatches)
	appendDrops(cs, EntityParam, pmMatches)
	appendDrops(cs, EntitySequence, sqMatches)

	// Step 4: analyzers, create/rename/modify.
	appendCreateRenameModify(cs, EntityAnalyzer, anMatches)

	// Step 5: tables and relations, create/rename/modify.
	appendCreateRenameModify(cs, EntityTable, tableMatches)
	appendCreateRenameModify(cs, EntityRelation, relMatches)

	pairs := tablePairs(tableMatches, relMatches)

	// Step 6: fields.
	for _, p := range pairs {
		diffFields(cs, p, &conflicts)
	}

	// Step 7: indexes.
	for _, p := range pairs {
		diffIndexes(cs, p, &conflicts)
	}

	// Step 8: events.
	for _, p := range pairs {
		diffEvents(cs, p, &conflicts)
	}

	// Step 9: functions, access methods, params, sequences.
	appendCreateRenameModify(cs, EntityFunction, fnMatches)
	appendCreateRenameModify(cs, EntityAccessMethod, amMatches)
	appendCreateRenameModify(cs, EntityParam, pmMatches)
	appendCreateRenameModify(cs, EntitySequence, sqMatches)

	if len(conflicts) > 0 {
		return nil, &RenameConflictError{Conflicts: conflicts}
	}

	return cs, nil
}

func appendDrops[T any](cs *ChangeSet, kind EntityKind, matches []matched[T]) {
	for _, m := range matches {
		if m.Status != StatusDrop {
			continue
		}
		cs.Add(Change{Entity: kind, Op: OpDrop, Name: m.Name, Live: m.Live})
	}
}

func appendCreateRenameModify[T any](cs *ChangeSet, kind EntityKind, matches []matched[T]) {
	byName := make(map[string][]matched[T])
	var names []string
	for _, m := range matches {
		switch m.Status {
		case StatusCreate, StatusRename, StatusModify:
			if _, ok := byName[m.Name]; !ok {
				names = append(names, m.Name)
			}
			byName[m.Name] = append(byName[m.Name], m)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		for _, m := range byName[n] {
			op := OpCreate
			if m.Status == StatusRename {
				op = OpRename
			} else if m.Status == StatusModify {
				op = OpModify
			}
			var live any
			if m.HasLive {
				live = m.Live
			}
			cs.Add(Change{Entity: kind, Op: op, Name: m.Name, OldName: m.OldName, Desired: m.Desired, Live: live})
		}
	}
}

// tablePair unifies a matched table or relation into one shape for the
// nested field/index/event passes.
type tablePair struct {
	name    string
	desired *schema.Table
	live    *schema.Table
}

func tablePairs(tableMatches []matched[*schema.Table], relMatches []matched[*schema.Relation]) []tablePair {
	var out []tablePair
	for _, m := range tableMatches {
		if m.Status == StatusDrop {
			continue
		}
		out = append(out, tablePair{name: m.Name, desired: m.Desired, live: m.Live})
	}
	for _, m := range relMatches {
		if m.Status == StatusDrop {
			continue
		}
		var desired, live *schema.Table
		if m.Desired != nil {
			desired = m.Desired.Table
		}
		if m.Live != nil {
			live = m.Live.Table
		}
		out = append(out, tablePair{name: m.Name, desired: desired, live: live})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func tableField(t *schema.Table) map[string]*schema.Field {
	m := map[string]*schema.Field{}
	if t == nil {
		return m
	}
	for _, f := range t.Fields {
		m[f.Name] = f
	}
	return m
}

func tableIndex(t *schema.Table) map[string]*schema.Index {
	m := map[string]*schema.Index{}
	if t == nil {
		return m
	}
	for _, idx := range t.Indexes {
		m[idx.Name] = idx
	}
	return m
}

func tableEvent(t *schema.Table) map[string]*schema.Event {
	m := map[string]*schema.Event{}
	if t == nil {
		return m
	}
	for _, e := range t.Events {
		m[e.Name] = e
	}
	return m
}

func diffFields(cs *ChangeSet, p tablePair, conflicts *[]RenameConflict) {
	matches := matchKind(EntityField, tableField(p.desired), tableField(p.live), entityOps[*schema.Field]{
		was:   func(f *schema.Field) []string { return f.PreviousNames },
		drop:  noDrop[*schema.Field],
		equal: fieldsEqual,
	}, conflicts)
	for _, m := range matches {
		if m.Status == StatusDrop || m.Status == StatusUnchanged {
			continue
		}
		op := OpCreate
		var delta *FieldDelta
		if m.Status == StatusRename {
			op = OpRename
		} else if m.Status == StatusModify {
			op = OpModify
			fd := compareFields(m.Desired, m.Live)
			delta = &fd
		}
		var live any
		if m.HasLive {
			live = m.Live
		}
		cs.Add(Change{Entity: EntityField, Op: op, Name: m.Name, OldName: m.OldName, Table: p.name, Desired: m.Desired, Live: live, FieldDelta: delta})
	}
}

func diffIndexes(cs *ChangeSet, p tablePair, conflicts *[]RenameConflict) {
	matches := matchKind(EntityIndex, tableIndex(p.desired), tableIndex(p.live), entityOps[*schema.Index]{
		was:   func(i *schema.Index) []string { return i.Was },
		drop:  noDrop[*schema.Index],
		equal: indexEqual,
	}, conflicts)
	for _, m := range matches {
		if m.Status == StatusDrop || m.Status == StatusUnchanged {
			continue
		}
		op := OpCreate
		switch m.Status {
		case StatusRename:
			op = OpRename
		case StatusModify:
			if indexRecreateDimensions(m.Desired, m.Live) {
				op = OpRecreate
			} else {
				op = OpModify
			}
		}
		var live any
		if m.HasLive {
			live = m.Live
		}
		cs.Add(Change{Entity: EntityIndex, Op: op, Name: m.Name, OldName: m.OldName, Table: p.name, Desired: m.Desired, Live: live})
	}
}

func diffEvents(cs *ChangeSet, p tablePair, conflicts *[]RenameConflict) {
	matches := matchKind(EntityEvent, tableEvent(p.desired), tableEvent(p.live), entityOps[*schema.Event]{
		was:   noWas[*schema.Event],
		drop:  noDrop[*schema.Event],
		equal: eventEqual,
	}, conflicts)
	for _, m := range matches {
		if m.Status == StatusDrop || m.Status == StatusUnchanged || m.Status == StatusRename {
			continue
		}
		op := OpCreate
		if m.Status == StatusModify {
			op = OpModify
		}
		var live any
		if m.HasLive {
			live = m.Live
		}
		cs.Add(Change{Entity: EntityEvent, Op: op, Name: m.Name, Table: p.name, Desired: m.Desired, Live: live})
	}
}

func noWas[T any](T) []string { return nil }
