// SPDX-License-Identifier: Apache-2.0

// Package ledger persists applied migrations to an append-only table
// inside the target database and drives apply/rollback, per §4.6.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum hashes s and formats it as "sha256.<hex>". The prefix is
// preserved byte-for-byte even if a future version adds other
// algorithms, so existing ledger rows stay verifiable.
func Checksum(s string) string {
	sum := sha256.Sum256([]byte(s))
	return "sha256." + hex.EncodeToString(sum[:])
}
