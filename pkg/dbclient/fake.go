// SPDX-License-Identifier: Apache-2.0

package dbclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// FakeClient is an in-memory Client for unit tests that exercise the
// migration ledger without a live database, the role FakeDB plays for
// the teacher's Postgres-backed tests. Unlike FakeDB, its record
// operations are not no-ops: the ledger round-trips data through it, so
// it must actually keep state.
type FakeClient struct {
	mu          sync.Mutex
	tables      map[string]map[string]map[string]any
	queries     []string
	infoResults map[string]any
	failNext    error
}

// NewFake returns an empty FakeClient.
func NewFake() *FakeClient {
	return &FakeClient{
		tables:      map[string]map[string]map[string]any{},
		infoResults: map[string]any{},
	}
}

func (c *FakeClient) Connect(ctx context.Context) error { return nil }
func (c *FakeClient) Close() error                      { return nil }

// SetInfoResult makes ExecuteQuery return result for the exact query
// text ddl, simulating an `INFO FOR DB`/`INFO FOR TABLE` response
// without a live database.
func (c *FakeClient) SetInfoResult(ddl string, result any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.infoResults[ddl] = result
}

// FailNextQuery makes the next ExecuteQuery call return err instead of
// recording or replaying anything.
func (c *FakeClient) FailNextQuery(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failNext = err
}

// ExecuteQuery replays a canned result registered via SetInfoResult, if
// any; otherwise it records the statement text and reports success. It
// performs no general DDL interpretation.
func (c *FakeClient) ExecuteQuery(ctx context.Context, ddl string) ([]QueryResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return nil, err
	}

	c.queries = append(c.queries, ddl)
	if result, ok := c.infoResults[ddl]; ok {
		return []QueryResult{{Status: "OK", Result: result}}, nil
	}
	return []QueryResult{{Status: "OK"}}, nil
}

// Queries returns every statement passed to ExecuteQuery, in order.
func (c *FakeClient) Queries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func (c *FakeClient) Create(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows, ok := c.tables[table]
	if !ok {
		rows = map[string]map[string]any{}
		c.tables[table] = rows
	}

	id := fmt.Sprintf("%s:%s", table, uuid.NewString())
	record := map[string]any{}
	for k, v := range data {
		record[k] = v
	}
	record["id"] = id
	rows[id] = record

	out := map[string]any{}
	for k, v := range record {
		out[k] = v
	}
	return out, nil
}

func (c *FakeClient) Select(ctx context.Context, target string) ([]map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rows, ok := c.tables[target]; ok {
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			out = append(out, r)
		}
		return out, nil
	}

	for _, rows := range c.tables {
		if r, ok := rows[target]; ok {
			return []map[string]any{r}, nil
		}
	}
	return nil, nil
}

func (c *FakeClient) Delete(ctx context.Context, target string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if rows, ok := c.tables[target]; ok {
		c.tables[target] = map[string]map[string]any{}
		_ = rows
		return nil
	}
	for _, rows := range c.tables {
		if _, ok := rows[target]; ok {
			delete(rows, target)
			return nil
		}
	}
	return nil
}
