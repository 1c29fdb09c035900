// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xataio/smig/pkg/dbclient"
	"github.com/xataio/smig/pkg/schema"
)

func oneTableSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.NewBuilder().
		AddTable(schema.NewTable("post").
			Field(schema.NewField("title", "string").Required())).
		Build()
	require.NoError(t, err)
	return s
}

// S1: applying a fresh schema against an empty database executes a
// forward script and records exactly one ledger row.
func TestManagerMigrateAppliesAndRecords(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)

	require.NoError(t, mgr.Initialize(context.Background()))

	mig, err := mgr.Migrate(context.Background(), oneTableSchema(t), "add post table")
	require.NoError(t, err)
	require.NotNil(t, mig)
	assert.Contains(t, mig.Up, "DEFINE TABLE")
	assert.Contains(t, mig.Up, "post")
	assert.NotEmpty(t, mig.ID)
	assert.Equal(t, Checksum(mig.Up), mig.Checksum)
	assert.Equal(t, Checksum(mig.Down), mig.DownChecksum)

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "add post table", rows[0].Message)
}

// S2: re-running Migrate against a database that already reflects the
// desired schema is a no-op: the diff is empty, nothing is executed,
// and the ledger gains no new row.
func TestManagerMigrateIdempotentOnSecondRun(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	desired := oneTableSchema(t)

	mig1, err := mgr.Migrate(context.Background(), desired, "first")
	require.NoError(t, err)
	require.NotNil(t, mig1)

	client.SetInfoResult("INFO FOR DB;", map[string]any{
		"tables": map[string]any{
			"post": "DEFINE TABLE post SCHEMAFULL;",
		},
	})
	client.SetInfoResult("INFO FOR TABLE post;", map[string]any{
		"fields": map[string]any{
			"title": "DEFINE FIELD title ON TABLE post TYPE string ASSERT $value != NONE;",
		},
	})

	mig2, err := mgr.Migrate(context.Background(), desired, "second")
	require.NoError(t, err)
	assert.Nil(t, mig2, "second migrate against an unchanged schema must be a no-op")

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1, "the ledger must still have exactly one row")
}

// S3: a query failing during Migrate (here the INFO FOR DB introspection
// query, which runs first) must not leave a ledger row behind.
func TestManagerMigrateFailureLeavesNoLedgerRow(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	client.FailNextQuery(assert.AnError)

	mig, err := mgr.Migrate(context.Background(), oneTableSchema(t), "")
	assert.Error(t, err)
	assert.Nil(t, mig)

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

// S5: rollback integrity. Tampering with a stored migration's up script
// must make Rollback fail with ErrTampered, and must not execute the
// down script or remove the ledger row.
func TestManagerRollbackDetectsTampering(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	mig, err := mgr.Migrate(context.Background(), oneTableSchema(t), "")
	require.NoError(t, err)
	require.NotNil(t, mig)

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	tampered, err := client.Select(context.Background(), LedgerTable)
	require.NoError(t, err)
	require.Len(t, tampered, 1)
	tampered[0]["up"] = "DEFINE TABLE tampered SCHEMAFULL;"

	queriesBefore := len(client.Queries())

	_, err = mgr.Rollback(context.Background(), mig.ID)
	assert.ErrorIs(t, err, ErrTampered)

	assert.Equal(t, queriesBefore, len(client.Queries()), "a tampered migration's down script must never execute")

	rowsAfter, err := mgr.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, rowsAfter, 1, "tampering must not remove the ledger row")
}

// A clean rollback removes the row and runs the down script.
func TestManagerRollbackCleanRemovesRow(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	mig, err := mgr.Migrate(context.Background(), oneTableSchema(t), "")
	require.NoError(t, err)
	require.NotNil(t, mig)

	rolledBack, err := mgr.Rollback(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, mig.ID, rolledBack.ID)
	assert.Contains(t, client.Queries(), mig.Down)

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestManagerRollbackNoMigrations(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	_, err := mgr.Rollback(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoMigrations)
}

// S6: rollback(all-after: id) reverses every migration from id onward,
// most recent first.
func TestManagerRollbackAllAfterReversesInOrder(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	s1, err := schema.NewBuilder().
		AddTable(schema.NewTable("post")).
		Build()
	require.NoError(t, err)
	mig1, err := mgr.Migrate(context.Background(), s1, "one")
	require.NoError(t, err)
	require.NotNil(t, mig1)

	s2, err := schema.NewBuilder().
		AddTable(schema.NewTable("post")).
		AddTable(schema.NewTable("comment")).
		Build()
	require.NoError(t, err)

	client.SetInfoResult("INFO FOR DB;", map[string]any{
		"tables": map[string]any{
			"post": "DEFINE TABLE post SCHEMAFULL;",
		},
	})
	client.SetInfoResult("INFO FOR TABLE post;", map[string]any{})

	mig2, err := mgr.Migrate(context.Background(), s2, "two")
	require.NoError(t, err)
	require.NotNil(t, mig2)

	rows, err := mgr.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	done, err := mgr.RollbackAllAfter(context.Background(), mig1.ID)
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, mig2.ID, done[0].ID, "most recent migration rolls back first")
	assert.Equal(t, mig1.ID, done[1].ID)

	remaining, err := mgr.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestManagerRollbackAllAfterUnknownID(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	_, err := mgr.RollbackAllAfter(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerHasChangesReportsDiff(t *testing.T) {
	client := dbclient.NewFake()
	mgr := NewManager(client)
	require.NoError(t, mgr.Initialize(context.Background()))

	cs, err := mgr.HasChanges(context.Background(), oneTableSchema(t))
	require.NoError(t, err)
	assert.False(t, cs.Empty())

	client.SetInfoResult("INFO FOR DB;", map[string]any{
		"tables": map[string]any{
			"post": "DEFINE TABLE post SCHEMAFULL;",
		},
	})
	client.SetInfoResult("INFO FOR TABLE post;", map[string]any{
		"fields": map[string]any{
			"title": "DEFINE FIELD title ON TABLE post TYPE string ASSERT $value != NONE;",
		},
	})

	cs, err = mgr.HasChanges(context.Background(), oneTableSchema(t))
	require.NoError(t, err)
	assert.True(t, cs.Empty())
}
