// SPDX-License-Identifier: Apache-2.0

package ledger

import "errors"

// ErrTampered is returned by Rollback when a ledger row's stored
// checksum no longer matches its stored up/down DDL.
var ErrTampered = errors.New("ledger: stored checksum does not match migration content")

// ErrNoMigrations is returned when a rollback is requested but the
// ledger is empty.
var ErrNoMigrations = errors.New("ledger: no migrations to roll back")

// ErrNotFound is returned when a rollback targets an id with no
// matching ledger row.
var ErrNotFound = errors.New("ledger: migration id not found")
