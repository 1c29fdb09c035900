// SPDX-License-Identifier: Apache-2.0

package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/smig/pkg/diff"
	"github.com/xataio/smig/pkg/schema"
)

func TestEmitEmptyChangeSet(t *testing.T) {
	up, down := Emit(&diff.ChangeSet{})
	assert.Empty(t, up)
	assert.Empty(t, down)
}

func TestEmitCreateTableWithFieldsAndIndex(t *testing.T) {
	b := schema.NewBuilder()
	b.AddTable(schema.NewTable("user").
		Field(schema.NewField("email", "string").Required()).
		Field(schema.NewField("name", "string")).
		Index(schema.NewIndex("email", "email").Unique()))
	desired, err := b.Build()
	require.NoError(t, err)

	cs, err := diff.Diff(desired, schema.New())
	require.NoError(t, err)
	up, down := Emit(cs)

	assert.Contains(t, up, "DEFINE TABLE user TYPE NORMAL SCHEMAFULL;")
	assert.Contains(t, up, "DEFINE FIELD email ON TABLE user TYPE string ASSERT $value != NONE;")
	assert.Contains(t, up, "DEFINE INDEX email ON TABLE user FIELDS email UNIQUE;")

	assert.True(t, strings.Index(up, "DEFINE TABLE user") < strings.Index(up, "DEFINE FIELD email"))
	assert.True(t, strings.Index(up, "DEFINE FIELD email") < strings.Index(up, "DEFINE INDEX email"))

	assert.Contains(t, down, "REMOVE TABLE user;")
	assert.Contains(t, down, "REMOVE FIELD email ON TABLE user;")
	assert.Contains(t, down, "REMOVE INDEX email ON TABLE user;")
}

func TestEmitDropTableReconstructsChildrenOnDown(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("legacy").
		Field(schema.NewField("x", "string")).
		Index(schema.NewIndex("x_idx", "x")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("legacy").DropTable().
		Field(schema.NewField("x", "string")).
		Index(schema.NewIndex("x_idx", "x")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := diff.Diff(desired, live)
	require.NoError(t, err)
	up, down := Emit(cs)

	assert.Equal(t, "REMOVE TABLE legacy;", up)
	assert.Contains(t, down, "DEFINE TABLE legacy TYPE NORMAL SCHEMAFULL;")
	assert.Contains(t, down, "DEFINE FIELD x ON TABLE legacy TYPE string;")
	assert.Contains(t, down, "DEFINE INDEX x_idx ON TABLE legacy FIELDS x;")
}

func TestEmitFieldRenameEmitsNativeRenameDirective(t *testing.T) {
	liveBuilder := schema.NewBuilder()
	liveBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("name", "string")))
	live, err := liveBuilder.Build()
	require.NoError(t, err)

	desiredBuilder := schema.NewBuilder()
	desiredBuilder.AddTable(schema.NewTable("user").Field(schema.NewField("displayName", "string").Was("name")))
	desired, err := desiredBuilder.Build()
	require.NoError(t, err)

	cs, err := diff.Diff(desired, live)
	require.NoError(t, err)
	up, down := Emit(cs)

	assert.Contains(t, up, "ALTER FIELD name ON TABLE user RENAME TO displayName;")
	assert.NotContains(t, up, "REMOVE FIELD name")
	assert.NotContains(t, up, "DEFINE FIELD displayName")

	assert.Contains(t, down, "ALTER FIELD displayName ON TABLE user RENAME TO name;")
	assert.NotContains(t, down, "REMOVE FIELD displayName")
	assert.NotContains(t, down, "DEFINE FIELD name")
}

func TestEmitIndexParamChangeRecreates(t *testing.T) {
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

	cs, err := diff.Diff(desired, live)
	require.NoError(t, err)
	up, _ := Emit(cs)

	require.Equal(t, "REMOVE INDEX embedding_idx ON TABLE doc;\nDEFINE INDEX embedding_idx ON TABLE doc FIELDS embedding HNSW DIMENSION 768 DIST COSINE M 16;", up)
}

func TestEmitDefaultPermissionsOmitted(t *testing.T) {
	b := schema.NewBuilder()
	b.AddTable(schema.NewTable("user").Field(schema.NewField("email", "string")))
	desired, err := b.Build()
	require.NoError(t, err)

	cs, err := diff.Diff(desired, schema.New())
	require.NoError(t, err)
	up, _ := Emit(cs)

	assert.NotContains(t, up, "PERMISSIONS")
}

func TestIndexKindClauseRendersSearchCacheSizes(t *testing.T) {
	idx := schema.NewIndex("body_idx", "body").Search("english").Caches(100, 100, 1000, 1000).Build()
	clause := indexKindClause(idx)
	assert.Contains(t, clause, "DOC_IDS_CACHE 100")
	assert.Contains(t, clause, "DOC_LENGTHS_CACHE 100")
	assert.Contains(t, clause, "POSTINGS_CACHE 1000")
	assert.Contains(t, clause, "TERMS_CACHE 1000")
}

func TestRenderDefaultQuotesBareLiterals(t *testing.T) {
	assert.Equal(t, "'active'", renderDefault("active"))
	assert.Equal(t, "42", renderDefault("42"))
	assert.Equal(t, "true", renderDefault("true"))
	assert.Equal(t, "time::now()", renderDefault("time::now()"))
	assert.Equal(t, "rand::uuid::v4()", renderDefault("rand::uuid::v4()"))
}
