// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xataio/smig/pkg/dbclient"
	"github.com/xataio/smig/pkg/diff"
	"github.com/xataio/smig/pkg/emit"
	"github.com/xataio/smig/pkg/schema"
)

const ledgerDDL = `
DEFINE TABLE IF NOT EXISTS ` + LedgerTable + ` SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS appliedAt ON TABLE ` + LedgerTable + ` TYPE datetime;
DEFINE FIELD IF NOT EXISTS up ON TABLE ` + LedgerTable + ` TYPE string;
DEFINE FIELD IF NOT EXISTS down ON TABLE ` + LedgerTable + ` TYPE string;
DEFINE FIELD IF NOT EXISTS checksum ON TABLE ` + LedgerTable + ` TYPE string;
DEFINE FIELD IF NOT EXISTS downChecksum ON TABLE ` + LedgerTable + ` TYPE string;
DEFINE FIELD IF NOT EXISTS message ON TABLE ` + LedgerTable + ` TYPE option<string>;
`

// MigrationManager orchestrates the full migrate/status/rollback
// pipeline against one database connection, per §4.6. A single
// MigrationManager must not be shared across concurrent migrate calls.
type MigrationManager struct {
	client dbclient.Client
}

// NewManager returns a MigrationManager using client for all database
// access. Initialize must be called once before Migrate/Rollback.
func NewManager(client dbclient.Client) *MigrationManager {
	return &MigrationManager{client: client}
}

// Initialize ensures the ledger table exists and stamps its schema
// version. It is idempotent because the ledger DDL uses IF NOT EXISTS;
// any statement result other than OK is returned as an error. It
// refuses to proceed if the ledger was last stamped by a build with a
// newer incompatible schema version.
func (m *MigrationManager) Initialize(ctx context.Context) error {
	dbResults, err := m.client.ExecuteQuery(ctx, "INFO FOR DB;")
	if err != nil {
		return fmt.Errorf("smig: initializing ledger: %w", err)
	}
	if len(dbResults) > 0 {
		if err := checkVersion(extractStoredVersion(flattenDefines(dbResults[0].Result))); err != nil {
			return err
		}
	}

	results, err := m.client.ExecuteQuery(ctx, ledgerDDL+versionDDL())
	if err != nil {
		return fmt.Errorf("smig: initializing ledger: %w", err)
	}
	for _, r := range results {
		if r.Status != "OK" {
			return fmt.Errorf("smig: initializing ledger: %s", r.Error)
		}
	}
	return nil
}

// HasChanges diffs desired against the live database and reports the
// resulting ChangeSet, without applying anything.
func (m *MigrationManager) HasChanges(ctx context.Context, desired *schema.Schema) (*diff.ChangeSet, error) {
	live, _, err := fetchLive(ctx, m.client)
	if err != nil {
		return nil, err
	}
	return diff.Diff(desired, live)
}

// Migrate diffs desired against the live database, and if there is any
// change, executes the forward script and records a ledger row. A nil
// Migration with a nil error means the diff was empty: nothing to do.
func (m *MigrationManager) Migrate(ctx context.Context, desired *schema.Schema, message string) (*Migration, error) {
	live, warnings, err := fetchLive(ctx, m.client)
	if err != nil {
		return nil, err
	}
	_ = warnings // not fatal; Migrate discards them and nothing logs them

	cs, err := diff.Diff(desired, live)
	if err != nil {
		return nil, err
	}
	if cs.Empty() {
		return nil, nil
	}

	up, down := emit.Emit(cs)

	results, err := m.client.ExecuteQuery(ctx, up)
	if err != nil {
		return nil, fmt.Errorf("smig: applying migration: %w", err)
	}
	for _, r := range results {
		if r.Status != "OK" {
			return nil, fmt.Errorf("smig: applying migration: %s", r.Error)
		}
	}

	mig := Migration{
		AppliedAt:    time.Now().UTC(),
		Up:           up,
		Down:         down,
		Checksum:     Checksum(up),
		DownChecksum: Checksum(down),
		Message:      message,
	}

	rec, err := m.client.Create(ctx, LedgerTable, mig.toRecord())
	if err != nil {
		return nil, fmt.Errorf("smig: recording migration: %w", err)
	}
	mig.ID = asString(rec["id"])

	return &mig, nil
}

// Status returns every ledger row, oldest first.
func (m *MigrationManager) Status(ctx context.Context) ([]Migration, error) {
	rows, err := m.client.Select(ctx, LedgerTable)
	if err != nil {
		return nil, fmt.Errorf("smig: reading ledger: %w", err)
	}
	migrations := make([]Migration, 0, len(rows))
	for _, row := range rows {
		migrations = append(migrations, migrationFromRecord(row))
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].AppliedAt.Before(migrations[j].AppliedAt) })
	return migrations, nil
}

func (m *MigrationManager) verify(mig Migration) error {
	if Checksum(mig.Up) != mig.Checksum || Checksum(mig.Down) != mig.DownChecksum {
		return ErrTampered
	}
	return nil
}

func (m *MigrationManager) rollbackOne(ctx context.Context, mig Migration) error {
	if err := m.verify(mig); err != nil {
		return err
	}

	results, err := m.client.ExecuteQuery(ctx, mig.Down)
	if err != nil {
		return fmt.Errorf("smig: rolling back migration %s: %w", mig.ID, err)
	}
	for _, r := range results {
		if r.Status != "OK" {
			return fmt.Errorf("smig: rolling back migration %s: %s", mig.ID, r.Error)
		}
	}

	return m.client.Delete(ctx, mig.ID)
}

// Rollback reverses one migration: the most recent if id is empty, or
// the row matching id. On checksum mismatch it returns ErrTampered and
// leaves the row and the database untouched.
func (m *MigrationManager) Rollback(ctx context.Context, id string) (*Migration, error) {
	migrations, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	if len(migrations) == 0 {
		return nil, ErrNoMigrations
	}

	target := migrations[len(migrations)-1]
	if id != "" {
		found := false
		for _, mig := range migrations {
			if mig.ID == id {
				target = mig
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}

	if err := m.rollbackOne(ctx, target); err != nil {
		return nil, err
	}
	return &target, nil
}

// RollbackAllAfter reverses every migration applied at or after id's
// appliedAt timestamp, most recent first, aborting on the first
// failure. It returns the migrations that were successfully rolled
// back, even on error.
func (m *MigrationManager) RollbackAllAfter(ctx context.Context, id string) ([]Migration, error) {
	migrations, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}

	var targetIdx = -1
	for i, mig := range migrations {
		if mig.ID == id {
			targetIdx = i
			break
		}
	}
	if targetIdx == -1 {
		return nil, ErrNotFound
	}

	toRollback := append([]Migration(nil), migrations[targetIdx:]...)
	sort.Slice(toRollback, func(i, j int) bool { return toRollback[i].AppliedAt.After(toRollback[j].AppliedAt) })

	var done []Migration
	for _, mig := range toRollback {
		if err := m.rollbackOne(ctx, mig); err != nil {
			return done, err
		}
		done = append(done, mig)
	}
	return done, nil
}
