// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationExportValidates(t *testing.T) {
	m := Migration{
		ID:           "_migrations:abc123",
		AppliedAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Up:           "DEFINE TABLE post SCHEMAFULL;",
		Down:         "REMOVE TABLE post;",
		Checksum:     Checksum("DEFINE TABLE post SCHEMAFULL;"),
		DownChecksum: Checksum("REMOVE TABLE post;"),
	}

	doc, err := m.Export()
	require.NoError(t, err)
	assert.Contains(t, string(doc), `"checksum":"sha256.`)
}

func TestMigrationExportRejectsBadChecksumFormat(t *testing.T) {
	m := Migration{
		ID:           "_migrations:abc123",
		AppliedAt:    time.Now(),
		Up:           "x",
		Down:         "y",
		Checksum:     "not-a-checksum",
		DownChecksum: Checksum("y"),
	}

	_, err := m.Export()
	assert.Error(t, err)
}
