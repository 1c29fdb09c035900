// SPDX-License-Identifier: Apache-2.0

package diff

import "sort"

// Status classifies how a matched (desired, live) pair of entities
// relates to each other, before being turned into a Change.
type Status int

const (
	StatusCreate Status = iota
	StatusDrop
	StatusRename
	StatusModify
	StatusUnchanged
)

// entityOps abstracts the operations the generic rename/create/drop
// matcher needs over one collection of named, renameable entities.
type entityOps[T any] struct {
	was   func(T) []string
	drop  func(T) bool // false for kinds with no explicit drop flag
	equal func(desired, live T) bool
}

// matched pairs a classified change with the desired/live values that
// produced it. A T zero value on the side that does not apply (e.g. Live
// for a Create) is the caller's responsibility to guard against via
// Status.
type matched[T any] struct {
	Name    string
	OldName string
	Status  Status
	Desired T
	Live    T
	HasLive bool
}

// matchKind runs the rename/create/drop/modify classification described
// in §4.4 over one pair of (desired, live) collections, sorted
// alphabetically by name for deterministic tie-breaking. Any rename
// ambiguity found along the way (§7: both the `was` candidate and the
// desired name already exist live) is appended to conflicts rather than
// silently resolved.
func matchKind[T any](kind EntityKind, desired, live map[string]T, ops entityOps[T], conflicts *[]RenameConflict) []matched[T] {
	liveUsed := make(map[string]bool, len(live))
	var out []matched[T]

	for _, name := range sortedKeys(desired) {
		d := desired[name]
		if l, ok := live[name]; ok {
			liveUsed[name] = true
			status := StatusUnchanged
			switch {
			case ops.drop(d):
				status = StatusDrop
			case isUnknown(d) || isUnknown(l):
				// Parser flagged one side unknown: compare by name only.
			case !ops.equal(d, l):
				status = StatusModify
			}
			for _, old := range ops.was(d) {
				if old != "" && old != name {
					if _, ok := live[old]; ok {
						*conflicts = append(*conflicts, RenameConflict{Kind: kind, Name: name, OldName: old})
					}
				}
			}
			out = append(out, matched[T]{Name: name, Status: status, Desired: d, Live: l, HasLive: true})
			continue
		}

		if ops.drop(d) {
			// Never existed live and marked for drop: no-op, nothing to do.
			continue
		}

		renamed := false
		for _, old := range ops.was(d) {
			if liveUsed[old] {
				continue
			}
			if l, ok := live[old]; ok {
				liveUsed[old] = true
				out = append(out, matched[T]{Name: name, OldName: old, Status: StatusRename, Desired: d, Live: l, HasLive: true})
				renamed = true
				break
			}
		}
		if !renamed {
			out = append(out, matched[T]{Name: name, Status: StatusCreate, Desired: d})
		}
	}

	for _, name := range sortedKeys(live) {
		if !liveUsed[name] {
			out = append(out, matched[T]{Name: name, Status: StatusDrop, Live: live[name]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return out[i].Status < out[j].Status
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
