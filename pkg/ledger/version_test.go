// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStoredVersionFindsStampedParam(t *testing.T) {
	stmts := []string{
		"DEFINE TABLE post SCHEMAFULL",
		"DEFINE PARAM OVERWRITE $_smig_ledger_version VALUE 'v1.0.0'",
	}
	assert.Equal(t, "v1.0.0", extractStoredVersion(stmts))
}

func TestExtractStoredVersionEmptyWhenNeverStamped(t *testing.T) {
	assert.Equal(t, "", extractStoredVersion([]string{"DEFINE TABLE post SCHEMAFULL"}))
}

func TestCheckVersionAcceptsSameOrOlderMajor(t *testing.T) {
	assert.NoError(t, checkVersion(""))
	assert.NoError(t, checkVersion("v1.0.0"))
	assert.NoError(t, checkVersion("v0.9.0"))
}

func TestCheckVersionRejectsNewerMajor(t *testing.T) {
	assert.Error(t, checkVersion("v2.0.0"))
}
