// SPDX-License-Identifier: Apache-2.0

package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/smig/pkg/schema"
)

func TestBuilderAssemblesSchema(t *testing.T) {
	s, err := schema.NewBuilder().
		AddTable(schema.NewTable("user").
			Field(schema.NewField("email", "string").Required()).
			Field(schema.NewField("name", "string")).
			Index(schema.NewIndex("email", "email").Unique())).
		Build()
	require.NoError(t, err)

	tbl, ok := s.Tables["user"]
	require.True(t, ok)
	assert.Len(t, tbl.Fields, 2)
	assert.Equal(t, "$value != NONE", tbl.Fields[0].CombinedAssert())
	assert.True(t, tbl.Indexes[0].Unique)
}

func TestBuilderRejectsDuplicateTables(t *testing.T) {
	_, err := schema.NewBuilder().
		AddTable(schema.NewTable("user")).
		AddTable(schema.NewTable("user")).
		Build()
	require.Error(t, err)
}

func TestBuilderRejectsColldingWasName(t *testing.T) {
	_, err := schema.NewBuilder().
		AddTable(schema.NewTable("person")).
		AddTable(schema.NewTable("user").Was("person")).
		Build()
	require.Error(t, err)
}

func TestBuilderRejectsUnknownSearchAnalyzer(t *testing.T) {
	_, err := schema.NewBuilder().
		AddTable(schema.NewTable("post").
			Field(schema.NewField("body", "string")).
			Index(schema.NewIndex("body_search", "body").Search("missing"))).
		Build()
	require.Error(t, err)
}

func TestCombinedAssertFormatting(t *testing.T) {
	f := schema.NewField("age", "int").
		Min(0).
		Max(150).
		Build()

	assert.Equal(t, "($value >= 0) AND ($value <= 150)", f.CombinedAssert())
}

func TestCombinedAssertEmpty(t *testing.T) {
	f := schema.NewField("name", "string").Build()
	assert.Equal(t, "", f.CombinedAssert())
}
