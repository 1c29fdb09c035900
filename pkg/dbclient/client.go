// SPDX-License-Identifier: Apache-2.0

// Package dbclient wraps the narrow surface smig needs against a live
// database: execute raw DDL/DML, and the handful of record operations
// the migration ledger itself needs. It deliberately does not expose a
// general query API — the differ and ledger never need one.
package dbclient

import "context"

// QueryResult is one statement's result from a multi-statement query,
// mirroring SurrealDB's HTTP /sql response shape: a list of per-statement
// results rather than a single rowset.
type QueryResult struct {
	Status string
	Time   string
	Result any
	Error  string
}

// Client is the database surface smig depends on. Implementations must
// be safe for concurrent use by a single migration run (never
// concurrent runs against the same namespace/database).
type Client interface {
	Connect(ctx context.Context) error
	Close() error

	// ExecuteQuery runs one or more semicolon-separated statements and
	// returns one QueryResult per statement, in order.
	ExecuteQuery(ctx context.Context, ddl string) ([]QueryResult, error)

	// Create inserts data as a new record in table, returning the
	// created record.
	Create(ctx context.Context, table string, data map[string]any) (map[string]any, error)

	// Select returns every record at target (a table name or specific
	// record id).
	Select(ctx context.Context, target string) ([]map[string]any, error)

	// Delete removes the record(s) at target.
	Delete(ctx context.Context, target string) error
}
