// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"fmt"
	"strings"
)

// RenameConflict reports a desired entity whose `was`/`previousNames`
// candidate names an entity that still exists live alongside the new
// name, per §7's rename-ambiguity case: with both old and new present,
// the differ cannot tell whether the old entity is the rename's source
// or an unrelated entity that happens to share the hinted name.
type RenameConflict struct {
	Kind    EntityKind
	Name    string
	OldName string
}

func (c RenameConflict) Error() string {
	return fmt.Sprintf("%s %q: was %q but both names exist live", c.Kind, c.Name, c.OldName)
}

// RenameConflictError aggregates every RenameConflict found during one
// Diff call. Diff returns it instead of a ChangeSet so callers never
// silently drop an entity a rename hint made ambiguous.
type RenameConflictError struct {
	Conflicts []RenameConflict
}

func (e *RenameConflictError) Error() string {
	msgs := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		msgs[i] = c.Error()
	}
	return "diff: rename ambiguity: " + strings.Join(msgs, "; ")
}
