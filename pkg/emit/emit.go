// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strings"

	"github.com/xataio/smig/pkg/diff"
	"github.com/xataio/smig/pkg/schema"
)

// Emit renders a ChangeSet into forward (up) and reverse (down) DDL
// scripts, per §4.5. It is a pure function: the same ChangeSet always
// produces byte-identical output, and the down script is the up
// script's statement-by-statement inverse run in reverse order.
func Emit(cs *diff.ChangeSet) (up, down string) {
	if cs.Empty() {
		return "", ""
	}

	var upStmts, downStmts []string
	for _, c := range cs.Changes {
		if s := forward(c); s != "" {
			upStmts = append(upStmts, s)
		}
	}
	for i := len(cs.Changes) - 1; i >= 0; i-- {
		if s := inverse(cs.Changes[i]); s != "" {
			downStmts = append(downStmts, s)
		}
	}
	return strings.Join(upStmts, "\n"), strings.Join(downStmts, "\n")
}

func forward(c diff.Change) string {
	switch c.Entity {
	case diff.EntityTable:
		return forwardTable(c)
	case diff.EntityRelation:
		return forwardRelation(c)
	case diff.EntityField:
		return forwardField(c)
	case diff.EntityIndex:
		return forwardIndex(c)
	case diff.EntityEvent:
		return forwardEvent(c)
	case diff.EntityFunction:
		return forwardFunction(c)
	case diff.EntityAnalyzer:
		return forwardAnalyzer(c)
	case diff.EntityAccessMethod:
		return forwardAccessMethod(c)
	case diff.EntityParam:
		return forwardParam(c)
	case diff.EntitySequence:
		return forwardSequence(c)
	}
	return ""
}

func inverse(c diff.Change) string {
	switch c.Entity {
	case diff.EntityTable:
		return inverseTable(c)
	case diff.EntityRelation:
		return inverseRelation(c)
	case diff.EntityField:
		return inverseField(c)
	case diff.EntityIndex:
		return inverseIndex(c)
	case diff.EntityEvent:
		return inverseEvent(c)
	case diff.EntityFunction:
		return inverseFunction(c)
	case diff.EntityAnalyzer:
		return inverseAnalyzer(c)
	case diff.EntityAccessMethod:
		return inverseAccessMethod(c)
	case diff.EntityParam:
		return inverseParam(c)
	case diff.EntitySequence:
		return inverseSequence(c)
	}
	return ""
}

func forwardTable(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineTable(c.Desired.(*schema.Table), false)
	case diff.OpDrop:
		return removeTable(c.Name)
	case diff.OpModify:
		return defineTable(c.Desired.(*schema.Table), true)
	case diff.OpRename:
		return renameTableStatements(c.OldName, c.Desired.(*schema.Table))
	}
	return ""
}

func inverseTable(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeTable(c.Name)
	case diff.OpDrop:
		return defineTableDeep(c.Live.(*schema.Table))
	case diff.OpModify:
		return defineTable(c.Live.(*schema.Table), true)
	case diff.OpRename:
		return renameTableStatements(c.Name, c.Live.(*schema.Table))
	}
	return ""
}

func forwardRelation(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineRelation(c.Desired.(*schema.Relation), false)
	case diff.OpDrop:
		return removeTable(c.Name)
	case diff.OpModify:
		return defineRelation(c.Desired.(*schema.Relation), true)
	case diff.OpRename:
		return renameRelationStatements(c.OldName, c.Desired.(*schema.Relation))
	}
	return ""
}

func inverseRelation(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeTable(c.Name)
	case diff.OpDrop:
		return defineRelationDeep(c.Live.(*schema.Relation))
	case diff.OpModify:
		return defineRelation(c.Live.(*schema.Relation), true)
	case diff.OpRename:
		return renameRelationStatements(c.Name, c.Live.(*schema.Relation))
	}
	return ""
}

func forwardField(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineField(c.Desired.(*schema.Field), c.Table, false)
	case diff.OpDrop:
		return removeField(c.Name, c.Table)
	case diff.OpModify:
		return defineField(c.Desired.(*schema.Field), c.Table, true)
	case diff.OpRename:
		return renameFieldStatements(c.Table, c.OldName, c.Desired.(*schema.Field))
	}
	return ""
}

func inverseField(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeField(c.Name, c.Table)
	case diff.OpDrop:
		return defineField(c.Live.(*schema.Field), c.Table, false)
	case diff.OpModify:
		return defineField(c.Live.(*schema.Field), c.Table, true)
	case diff.OpRename:
		return renameFieldStatements(c.Table, c.Name, c.Live.(*schema.Field))
	}
	return ""
}

func forwardIndex(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineIndex(c.Desired.(*schema.Index), c.Table, false)
	case diff.OpDrop:
		return removeIndex(c.Name, c.Table)
	case diff.OpModify:
		return defineIndex(c.Desired.(*schema.Index), c.Table, true)
	case diff.OpRename:
		return renameIndexStatements(c.Table, c.OldName, c.Desired.(*schema.Index))
	case diff.OpRecreate:
		return recreateIndexStatements(c.Name, c.Table, c.Desired.(*schema.Index))
	}
	return ""
}

func inverseIndex(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeIndex(c.Name, c.Table)
	case diff.OpDrop:
		return defineIndex(c.Live.(*schema.Index), c.Table, false)
	case diff.OpModify:
		return defineIndex(c.Live.(*schema.Index), c.Table, true)
	case diff.OpRename:
		return renameIndexStatements(c.Table, c.Name, c.Live.(*schema.Index))
	case diff.OpRecreate:
		return recreateIndexStatements(c.Name, c.Table, c.Live.(*schema.Index))
	}
	return ""
}

func forwardEvent(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineEvent(c.Desired.(*schema.Event), c.Table, false)
	case diff.OpDrop:
		return removeEvent(c.Name, c.Table)
	case diff.OpModify:
		return defineEvent(c.Desired.(*schema.Event), c.Table, true)
	}
	return ""
}

func inverseEvent(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeEvent(c.Name, c.Table)
	case diff.OpDrop:
		return defineEvent(c.Live.(*schema.Event), c.Table, false)
	case diff.OpModify:
		return defineEvent(c.Live.(*schema.Event), c.Table, true)
	}
	return ""
}

func forwardFunction(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineFunction(c.Desired.(*schema.Function), false)
	case diff.OpDrop:
		return removeFunction(c.Name)
	case diff.OpModify:
		return defineFunction(c.Desired.(*schema.Function), true)
	case diff.OpRename:
		return renameFunctionStatements(c.OldName, c.Desired.(*schema.Function))
	}
	return ""
}

func inverseFunction(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeFunction(c.Name)
	case diff.OpDrop:
		return defineFunction(c.Live.(*schema.Function), false)
	case diff.OpModify:
		return defineFunction(c.Live.(*schema.Function), true)
	case diff.OpRename:
		return renameFunctionStatements(c.Name, c.Live.(*schema.Function))
	}
	return ""
}

func forwardAnalyzer(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineAnalyzer(c.Desired.(*schema.Analyzer), false)
	case diff.OpDrop:
		return removeAnalyzer(c.Name)
	case diff.OpModify:
		return defineAnalyzer(c.Desired.(*schema.Analyzer), true)
	case diff.OpRename:
		return renameAnalyzerStatements(c.OldName, c.Desired.(*schema.Analyzer))
	}
	return ""
}

func inverseAnalyzer(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeAnalyzer(c.Name)
	case diff.OpDrop:
		return defineAnalyzer(c.Live.(*schema.Analyzer), false)
	case diff.OpModify:
		return defineAnalyzer(c.Live.(*schema.Analyzer), true)
	case diff.OpRename:
		return renameAnalyzerStatements(c.Name, c.Live.(*schema.Analyzer))
	}
	return ""
}

func forwardAccessMethod(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineAccessMethod(c.Desired.(*schema.AccessMethod), false)
	case diff.OpDrop:
		return removeAccessMethod(c.Name)
	case diff.OpModify:
		return defineAccessMethod(c.Desired.(*schema.AccessMethod), true)
	case diff.OpRename:
		return renameAccessMethodStatements(c.OldName, c.Desired.(*schema.AccessMethod))
	}
	return ""
}

func inverseAccessMethod(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeAccessMethod(c.Name)
	case diff.OpDrop:
		return defineAccessMethod(c.Live.(*schema.AccessMethod), false)
	case diff.OpModify:
		return defineAccessMethod(c.Live.(*schema.AccessMethod), true)
	case diff.OpRename:
		return renameAccessMethodStatements(c.Name, c.Live.(*schema.AccessMethod))
	}
	return ""
}

func forwardParam(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineParam(c.Desired.(*schema.Param), false)
	case diff.OpDrop:
		return removeParam(c.Name)
	case diff.OpModify:
		return defineParam(c.Desired.(*schema.Param), true)
	case diff.OpRename:
		return renameParamStatements(c.OldName, c.Desired.(*schema.Param))
	}
	return ""
}

func inverseParam(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeParam(c.Name)
	case diff.OpDrop:
		return defineParam(c.Live.(*schema.Param), false)
	case diff.OpModify:
		return defineParam(c.Live.(*schema.Param), true)
	case diff.OpRename:
		return renameParamStatements(c.Name, c.Live.(*schema.Param))
	}
	return ""
}

func forwardSequence(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return defineSequence(c.Desired.(*schema.Sequence), false)
	case diff.OpDrop:
		return removeSequence(c.Name)
	case diff.OpModify:
		return defineSequence(c.Desired.(*schema.Sequence), true)
	case diff.OpRename:
		return renameSequenceStatements(c.OldName, c.Desired.(*schema.Sequence))
	}
	return ""
}

func inverseSequence(c diff.Change) string {
	switch c.Op {
	case diff.OpCreate:
		return removeSequence(c.Name)
	case diff.OpDrop:
		return defineSequence(c.Live.(*schema.Sequence), false)
	case diff.OpModify:
		return defineSequence(c.Live.(*schema.Sequence), true)
	case diff.OpRename:
		return renameSequenceStatements(c.Name, c.Live.(*schema.Sequence))
	}
	return ""
}
