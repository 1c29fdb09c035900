// SPDX-License-Identifier: Apache-2.0

package diff

import "github.com/xataio/smig/pkg/schema"

// effectiveValue returns the field's single DB-level VALUE clause: a
// computed() value and an explicit value() call both ultimately render
// the same clause, so they are compared as one dimension.
func effectiveValue(f *schema.Field) string {
	if f.Computed != "" {
		return f.Computed
	}
	return f.Value
}

// compareFields diffs the eight normalized dimensions of a field that
// exists on both sides, per §4.4.
func compareFields(d, l *schema.Field) FieldDelta {
	return FieldDelta{
		Type:        d.Type != l.Type,
		Readonly:    d.Readonly != l.Readonly,
		Flexible:    d.Flexible != l.Flexible,
		Default:     d.Default != l.Default,
		Value:       effectiveValue(d) != effectiveValue(l),
		Assert:      !stringSliceEqual(d.Assert, l.Assert),
		Permissions: d.Permissions != l.Permissions,
		Comment:     !stringSliceEqual(d.Comments, l.Comments),
	}
}

func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fieldsEqual(d, l *schema.Field) bool {
	return !compareFields(d, l).Any()
}

// indexRecreateDimensions reports whether columns, uniqueness, kind, or
// any kind-specific parameter differ — any of which forces a Recreate
// per §4.4, since indexes are immutable with respect to those
// attributes.
func indexRecreateDimensions(d, l *schema.Index) bool {
	if !stringSliceEqual(d.Columns, l.Columns) {
		return true
	}
	if d.Unique != l.Unique || d.Kind != l.Kind {
		return true
	}
	switch d.Kind {
	case schema.IndexSearch:
		if d.Analyzer != l.Analyzer || d.Highlights != l.Highlights {
			return true
		}
		if (d.BM25 == nil) != (l.BM25 == nil) {
			return true
		}
		if d.BM25 != nil && l.BM25 != nil && (*d.BM25 != *l.BM25) {
			return true
		}
		if d.DocIDsCache != l.DocIDsCache || d.DocLengthsCache != l.DocLengthsCache ||
			d.PostingsCache != l.PostingsCache || d.TermsCache != l.TermsCache {
			return true
		}
	case schema.IndexMTree:
		if d.Dimension != l.Dimension || d.Dist != l.Dist || d.Capacity != l.Capacity {
			return true
		}
	case schema.IndexHNSW:
		if d.Dimension != l.Dimension || d.Dist != l.Dist {
			return true
		}
		if d.EFC != l.EFC || d.M != l.M || d.M0 != l.M0 || d.LM != l.LM {
			return true
		}
	}
	return false
}

func indexEqual(d, l *schema.Index) bool {
	if indexRecreateDimensions(d, l) {
		return false
	}
	return d.Concurrently == l.Concurrently && d.IfNotExists == l.IfNotExists &&
		d.Overwrite == l.Overwrite && stringSliceEqual(d.Comments, l.Comments)
}

func eventEqual(d, l *schema.Event) bool {
	return d.Trigger == l.Trigger && d.When == l.When && d.Then == l.Then
}

func functionParamsEqual(d, l []schema.FunctionParam) bool {
	if len(d) != len(l) {
		return false
	}
	for i := range d {
		if d[i] != l[i] {
			return false
		}
	}
	return true
}

func functionEqual(d, l *schema.Function) bool {
	return functionParamsEqual(d.Params, l.Params) && d.ReturnType == l.ReturnType &&
		d.Body == l.Body && d.Permissions == l.Permissions
}

func analyzerEqual(d, l *schema.Analyzer) bool {
	return stringSliceEqual(d.Tokenizer, l.Tokenizer) && stringSliceEqual(d.Filters, l.Filters) && d.Function == l.Function
}

func accessMethodEqual(d, l *schema.AccessMethod) bool {
	return d.Type == l.Type && d.SessionDuration == l.SessionDuration && d.TokenDuration == l.TokenDuration &&
		d.Signup == l.Signup && d.Signin == l.Signin && d.Authenticate == l.Authenticate
}

func paramEqual(d, l *schema.Param) bool {
	return d.Value == l.Value && d.Comment == l.Comment
}

func int64PtrEqual(a, b *int64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func stringPtrEqual(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func sequenceEqual(d, l *schema.Sequence) bool {
	return int64PtrEqual(d.Start, l.Start) && int64PtrEqual(d.BatchSize, l.BatchSize) && stringPtrEqual(d.BatchTimeout, l.BatchTimeout)
}

func tablePermissionsEqual(d, l map[string]string) bool {
	if len(d) != len(l) {
		return false
	}
	for k, v := range d {
		if l[k] != v {
			return false
		}
	}
	return true
}

func changeFeedEqual(d, l *schema.ChangeFeed) bool {
	if (d == nil) != (l == nil) {
		return false
	}
	return d == nil || *d == *l
}

// tableHeaderEqual compares the table-level attributes that are not
// Fields/Indexes/Events (those are diffed independently).
func tableHeaderEqual(d, l *schema.Table) bool {
	return d.Schemaful == l.Schemaful && d.Kind == l.Kind &&
		changeFeedEqual(d.ChangeFeed, l.ChangeFeed) &&
		tablePermissionsEqual(d.Permissions, l.Permissions) &&
		stringSliceEqual(d.Comments, l.Comments)
}

func relationHeaderEqual(d, l *schema.Relation) bool {
	return tableHeaderEqual(d.Table, l.Table) && d.From == l.From && d.To == l.To && d.Enforced == l.Enforced
}
