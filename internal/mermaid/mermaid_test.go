// SPDX-License-Identifier: Apache-2.0

package mermaid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/smig/pkg/schema"
)

func TestRenderTableAndRelation(t *testing.T) {
	s, err := schema.NewBuilder().
		AddTable(schema.NewTable("user").
			Field(schema.NewField("email", "string"))).
		AddTable(schema.NewTable("post").
			Field(schema.NewField("title", "string"))).
		AddRelation(schema.NewRelation("wrote").
			From("user").To("post").Enforced()).
		Build()
	require.NoError(t, err)

	out := Render(s)

	assert.Contains(t, out, "erDiagram")
	assert.Contains(t, out, "user {")
	assert.Contains(t, out, "string email")
	assert.Contains(t, out, "post {")
	assert.Contains(t, out, `user ||--o{ post : "wrote"`)
}

func TestMermaidTypeStripsGenerics(t *testing.T) {
	assert.Equal(t, "option", mermaidType("option<string>"))
	assert.Equal(t, "record", mermaidType("record<user>"))
	assert.Equal(t, "any", mermaidType(""))
}
