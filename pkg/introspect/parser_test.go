// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldBasic(t *testing.T) {
	f, err := ParseField(`DEFINE FIELD email ON TABLE user TYPE string ASSERT (string::len($value) >= 3) AND (string::len($value) <= 255) PERMISSIONS FULL COMMENT "primary contact address"`)
	require.NoError(t, err)
	assert.Equal(t, "email", f.Name)
	assert.Equal(t, "string", f.Type)
	assert.Equal(t, []string{"string::len($value) >= 3", "string::len($value) <= 255"}, f.Assert)
	assert.Equal(t, "FULL", f.Permissions)
	assert.Equal(t, []string{"primary contact address"}, f.Comments)
}

func TestParseFieldUnknownFallback(t *testing.T) {
	f := ParseFieldSafe(`garbage not a field definition`)
	assert.True(t, f.Unknown)
}

func TestParseIndexMTree(t *testing.T) {
	idx, err := ParseIndex(`DEFINE INDEX embedding_idx ON TABLE doc FIELDS embedding MTREE DIMENSION 768 DIST COSINE CAPACITY 40`)
	require.NoError(t, err)
	assert.Equal(t, "embedding_idx", idx.Name)
	assert.Equal(t, []string{"embedding"}, idx.Columns)
	assert.Equal(t, "MTREE", string(idx.Kind))
	assert.Equal(t, 768, idx.Dimension)
	assert.Equal(t, "COSINE", string(idx.Dist))
	assert.Equal(t, 40, idx.Capacity)
}

func TestParseIndexSearchDefaultsBM25(t *testing.T) {
	idx, err := ParseIndex(`DEFINE INDEX body_idx ON TABLE doc FIELDS body SEARCH ANALYZER english BM25 HIGHLIGHTS`)
	require.NoError(t, err)
	require.NotNil(t, idx.BM25)
	assert.InDelta(t, 1.2, idx.BM25.K1, 0.0001)
	assert.InDelta(t, 0.75, idx.BM25.B, 0.0001)
	assert.True(t, idx.Highlights)
	assert.Equal(t, "english", idx.Analyzer)
}

func TestParseIndexSearchCacheSizes(t *testing.T) {
	idx, err := ParseIndex(`DEFINE INDEX body_idx ON TABLE doc FIELDS body SEARCH ANALYZER english DOC_IDS_CACHE 100 DOC_LENGTHS_CACHE 100 POSTINGS_CACHE 1000 TERMS_CACHE 1000`)
	require.NoError(t, err)
	assert.Equal(t, 100, idx.DocIDsCache)
	assert.Equal(t, 100, idx.DocLengthsCache)
	assert.Equal(t, 1000, idx.PostingsCache)
	assert.Equal(t, 1000, idx.TermsCache)
}

func TestParseEventInfersTrigger(t *testing.T) {
	e, err := ParseEvent(`DEFINE EVENT audit_update ON TABLE doc WHEN $event = "UPDATE" THEN { CREATE audit_log SET doc = $after.id; }`)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE", string(e.Trigger))
	assert.Contains(t, e.Then, "CREATE audit_log")
}

func TestParseFunctionExtractsSignature(t *testing.T) {
	fn, err := ParseFunction(`DEFINE FUNCTION fn::greet($name: string) -> string { RETURN "hi " + $name; } PERMISSIONS FULL`)
	require.NoError(t, err)
	assert.Equal(t, "fn::greet", fn.Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "name", fn.Params[0].Name)
	assert.Equal(t, "string", fn.Params[0].Type)
	assert.Equal(t, "string", fn.ReturnType)
	assert.Equal(t, "FULL", fn.Permissions)
}

func TestParseTableHeaderRelation(t *testing.T) {
	tbl, isRelation, err := ParseTableHeader(`DEFINE TABLE follows SCHEMAFULL TYPE RELATION IN person OUT person ENFORCED`)
	require.NoError(t, err)
	assert.True(t, isRelation)
	assert.Equal(t, "follows", tbl.Name)

	rel, err := ParseRelationHeader(`DEFINE TABLE follows SCHEMAFULL TYPE RELATION IN person OUT person ENFORCED`)
	require.NoError(t, err)
	assert.Equal(t, "person", rel.From)
	assert.Equal(t, "person", rel.To)
	assert.True(t, rel.Enforced)
}

func TestParseTableHeaderPermissions(t *testing.T) {
	tbl, _, err := ParseTableHeader(`DEFINE TABLE post SCHEMAFULL PERMISSIONS FOR select FULL FOR create, update WHERE $auth.id = author FOR delete NONE`)
	require.NoError(t, err)
	assert.Equal(t, "FULL", tbl.Permissions["select"])
	assert.Equal(t, "WHERE $auth.id = author", tbl.Permissions["create,update"])
	assert.Equal(t, "NONE", tbl.Permissions["delete"])
}

func TestParseAccessMethodRecord(t *testing.T) {
	am, err := ParseAccessMethod(`DEFINE ACCESS user_access ON DATABASE TYPE RECORD SIGNUP (CREATE user SET email = $email) SIGNIN (SELECT * FROM user WHERE email = $email) DURATION FOR TOKEN 15m, FOR SESSION 12h`)
	require.NoError(t, err)
	assert.Equal(t, "RECORD", string(am.Type))
	assert.Contains(t, am.Signup, "CREATE user")
	assert.Contains(t, am.Signin, "SELECT * FROM user")
}

func TestParseParamAndSequence(t *testing.T) {
	p, err := ParseParam(`DEFINE PARAM $maxUploadSize VALUE 10485760 COMMENT "bytes"`)
	require.NoError(t, err)
	assert.Equal(t, "maxUploadSize", p.Name)
	assert.Equal(t, "10485760", p.Value)
	assert.Equal(t, "bytes", p.Comment)

	sq, err := ParseSequence(`DEFINE SEQUENCE order_ids START 1000 BATCH 50 TIMEOUT 5s`)
	require.NoError(t, err)
	require.NotNil(t, sq.Start)
	assert.Equal(t, int64(1000), *sq.Start)
	require.NotNil(t, sq.BatchSize)
	assert.Equal(t, int64(50), *sq.BatchSize)
	require.NotNil(t, sq.BatchTimeout)
	assert.Equal(t, "5s", *sq.BatchTimeout)
}

func TestParserParseDatabaseDispatches(t *testing.T) {
	p := NewParser()
	s := p.ParseDatabase([]string{
		`DEFINE TABLE person SCHEMAFULL`,
		`DEFINE TABLE follows SCHEMAFULL TYPE RELATION IN person OUT person`,
		`DEFINE FUNCTION fn::greet() -> string { RETURN "hi"; }`,
		`DEFINE PARAM $limit VALUE 10`,
	})
	assert.Contains(t, s.Tables, "person")
	assert.Contains(t, s.Relations, "follows")
	assert.Contains(t, s.Functions, "fn::greet")
	assert.Contains(t, s.Params, "limit")
	assert.Empty(t, p.Warnings)
}

func TestParserParseTableMergesFieldsIndexesEvents(t *testing.T) {
	p := NewParser()
	s := p.ParseDatabase([]string{`DEFINE TABLE person SCHEMAFULL`})
	table := s.Tables["person"]
	p.ParseTable(table, []string{
		`DEFINE FIELD name ON TABLE person TYPE string`,
		`DEFINE INDEX name_idx ON TABLE person FIELDS name UNIQUE`,
		`DEFINE EVENT on_create ON TABLE person WHEN $event = "CREATE" THEN { }`,
	})
	require.Len(t, table.Fields, 1)
	require.Len(t, table.Indexes, 1)
	require.Len(t, table.Events, 1)
	assert.Equal(t, "name", table.Fields[0].Name)
	assert.True(t, table.Indexes[0].Unique)
}
