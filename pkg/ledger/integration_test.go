// SPDX-License-Identifier: Apache-2.0

//go:build integration

package ledger_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xataio/smig/pkg/dbclient"
	"github.com/xataio/smig/pkg/ledger"
	"github.com/xataio/smig/pkg/schema"
)

// defaultSurrealDBImage is used unless SURREALDB_VERSION overrides the tag.
// No dedicated testcontainers module for SurrealDB ships in the pack, so
// this uses the generic container API directly, the same way the rest of
// the pack reaches for testcontainers.GenericContainer when no purpose-built
// module exists for a given backing service.
const defaultSurrealDBImage = "surrealdb/surrealdb:v1.5.3"

func startSurrealDB(t *testing.T) string {
	t.Helper()

	image := defaultSurrealDBImage
	if v := os.Getenv("SURREALDB_VERSION"); v != "" {
		image = "surrealdb/surrealdb:" + v
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"start", "--user", "root", "--pass", "root", "memory"},
		WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(30 * time.Second),
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctr.Terminate(ctx) })

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "8000/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, port.Port())
}

// TestManagerLifecycleAgainstRealSurrealDB exercises Initialize/Migrate/
// Status/Rollback against a live SurrealDB instance, closing the gap left
// by the FakeClient-backed unit tests: it proves the emitted SurrealQL is
// actually accepted by the database, not just internally consistent.
func TestManagerLifecycleAgainstRealSurrealDB(t *testing.T) {
	url := startSurrealDB(t)

	client := dbclient.New(dbclient.Config{
		URL:       url,
		Namespace: "smig_it",
		Database:  "smig_it",
		Username:  "root",
		Password:  "root",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, client.Connect(ctx))
	defer client.Close()

	mgr := ledger.NewManager(client)
	require.NoError(t, mgr.Initialize(ctx))

	desired, err := schema.NewBuilder().
		AddTable(schema.NewTable("post").
			Field(schema.NewField("title", "string").Required())).
		Build()
	require.NoError(t, err)

	mig, err := mgr.Migrate(ctx, desired, "add post table")
	require.NoError(t, err)
	require.NotNil(t, mig)

	migrations, err := mgr.Status(ctx)
	require.NoError(t, err)
	require.Len(t, migrations, 1)

	rolledBack, err := mgr.Rollback(ctx, "")
	require.NoError(t, err)
	require.Equal(t, mig.ID, rolledBack.ID)

	migrations, err = mgr.Status(ctx)
	require.NoError(t, err)
	require.Empty(t, migrations)
}
