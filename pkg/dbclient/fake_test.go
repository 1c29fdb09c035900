// SPDX-License-Identifier: Apache-2.0

package dbclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeClientCreateSelectDelete(t *testing.T) {
	c := NewFake()
	ctx := context.Background()

	rec, err := c.Create(ctx, "_migrations", map[string]any{"message": "init"})
	require.NoError(t, err)
	id, ok := rec["id"].(string)
	require.True(t, ok)
	assert.Equal(t, "init", rec["message"])

	rows, err := c.Select(ctx, "_migrations")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	single, err := c.Select(ctx, id)
	require.NoError(t, err)
	require.Len(t, single, 1)

	require.NoError(t, c.Delete(ctx, id))
	rows, err = c.Select(ctx, "_migrations")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFakeClientExecuteQueryRecordsStatements(t *testing.T) {
	c := NewFake()
	ctx := context.Background()

	_, err := c.ExecuteQuery(ctx, "DEFINE TABLE user;")
	require.NoError(t, err)
	_, err = c.ExecuteQuery(ctx, "DEFINE FIELD name ON TABLE user;")
	require.NoError(t, err)

	assert.Equal(t, []string{"DEFINE TABLE user;", "DEFINE FIELD name ON TABLE user;"}, c.Queries())
}
