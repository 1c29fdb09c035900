// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/smig/pkg/schema"
)

func buildUserSchema(t *testing.T) *schema.Schema {
	t.Helper()
	b := schema.NewBuilder()
	b.AddTable(schema.NewTable("user").
		Field(schema.NewField("email", "string").Required()).
		Field(schema.NewField("name", "string")).
		Index(schema.NewIndex("email", "email").Unique()))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func changesOf(cs *ChangeSet, entity EntityKind) []Change {
	var out []Change
	for _, c := range cs.Changes {
		if c.Entity == entity {
			out = append(out, c)
		}
	}
	return out
}

func TestDiffEmptyAgainstItself(t *testing.T) {
	s := buildUserSchema(t)
	cs, err := Diff(s, s)
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}

func TestDiffCreateFromEmptyLive(t *testing.T) {
	s := buildUserSchema(t)
	live := schema.New()
	cs, err := Diff(s, live)
	require.NoError(t, err)
	require.False(t, cs.Empty())

	tables := changesOf(cs, EntityTable)
	require.Len(t, tables, 1)
	assert.Equal(t, OpCreate, tables[0].Op)
	assert.Equal(t, "user", tables[0].Name)

	fields := changesOf(cs, EntityField)
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Name)
	assert.Equal(t, "name", fields[1].Name)
	for _, f := range fields {
		assert.Equal(t, OpCreate, f.Op)
	}

	indexes := changesOf(cs, EntityIndex)
	require.Len(t, indexes, 1)
	assert.Equal(t, OpCreate, indexes[0].Op)
}

func TestDiffFieldRename(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("name", "string")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("displayName", "string").Was("name")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	fields := changesOf(cs, EntityField)
	require.Len(t, fields, 1)
	assert.Equal(t, OpRename, fields[0].Op)
	assert.Equal(t, "name", fields[0].OldName)
	assert.Equal(t, "displayName", fields[0].Name)
}

func TestDiffIndexParamChangeForcesRecreate(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("doc").
		Field(schema.NewField("embedding", "array<float>")).
		Index(schema.NewIndex("embedding_idx", "embedding").HNSW(768, schema.DistCosine).M(12)))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("doc").
		Field(schema.NewField("embedding", "array<float>")).
		Index(schema.NewIndex("embedding_idx", "embedding").HNSW(768, schema.DistCosine).M(16)))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	indexes := changesOf(cs, EntityIndex)
	require.Len(t, indexes, 1)
	assert.Equal(t, OpRecreate, indexes[0].Op)
}

func TestDiffSearchIndexCacheSizeChangeForcesRecreate(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("doc").
		Field(schema.NewField("body", "string")).
		Index(schema.NewIndex("body_idx", "body").Search("english").Caches(100, 100, 1000, 1000)))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("doc").
		Field(schema.NewField("body", "string")).
		Index(schema.NewIndex("body_idx", "body").Search("english").Caches(200, 100, 1000, 1000)))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	indexes := changesOf(cs, EntityIndex)
	require.Len(t, indexes, 1)
	assert.Equal(t, OpRecreate, indexes[0].Op)
}

func TestDiffTableDropFlag(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("legacy").Field(schema.NewField("x", "string")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("legacy").DropTable().Field(schema.NewField("x", "string")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	tables := changesOf(cs, EntityTable)
	require.Len(t, tables, 1)
	assert.Equal(t, OpDrop, tables[0].Op)
	assert.Empty(t, changesOf(cs, EntityField))
}

func TestDiffAlphabeticTieBreak(t *testing.T) {
	live := schema.New()

	b := schema.NewBuilder()
	b.AddTable(schema.NewTable("zebra"))
	b.AddTable(schema.NewTable("alpha"))
	b.AddTable(schema.NewTable("mango"))
	desired, err := b.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	tables := changesOf(cs, EntityTable)
	require.Len(t, tables, 3)
	assert.Equal(t, []string{"alpha", "mango", "zebra"}, []string{tables[0].Name, tables[1].Name, tables[2].Name})
}

func TestDiffPermissionsDefaultEquivalence(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("email", "string").Permission("FULL")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("email", "string").Permission("")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}

func TestDiffRenameAmbiguityReportsConflict(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("user").
		Field(schema.NewField("name", "string")).
		Field(schema.NewField("displayName", "string")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("user").
		Field(schema.NewField("displayName", "string").Was("name")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := Diff(desired, live)
	require.Nil(t, cs)
	require.Error(t, err)

	var conflictErr *RenameConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, EntityField, conflictErr.Conflicts[0].Kind)
	assert.Equal(t, "displayName", conflictErr.Conflicts[0].Name)
	assert.Equal(t, "name", conflictErr.Conflicts[0].OldName)
}
