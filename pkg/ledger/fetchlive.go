// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"context"
	"fmt"

	"github.com/xataio/smig/pkg/dbclient"
	"github.com/xataio/smig/pkg/introspect"
	"github.com/xataio/smig/pkg/schema"
)

// fetchLive connects to client and introspects the full live schema:
// `INFO FOR DB` for the top-level entities and table/relation headers,
// then one `INFO FOR TABLE <name>` per table/relation to fill in its
// fields, indexes, and events. The `_migrations` ledger table itself is
// excluded, per §3.4.
func fetchLive(ctx context.Context, client dbclient.Client) (*schema.Schema, []introspect.Warning, error) {
	parser := introspect.NewParser()

	dbResults, err := client.ExecuteQuery(ctx, "INFO FOR DB;")
	if err != nil {
		return nil, nil, fmt.Errorf("smig: fetching INFO FOR DB: %w", err)
	}
	if len(dbResults) == 0 {
		return nil, nil, fmt.Errorf("smig: INFO FOR DB returned no result")
	}

	live := parser.ParseDatabase(flattenDefines(dbResults[0].Result))
	delete(live.Tables, LedgerTable)

	for name, t := range live.Tables {
		if err := fillTable(ctx, client, parser, t); err != nil {
			return nil, nil, fmt.Errorf("smig: fetching INFO FOR TABLE %s: %w", name, err)
		}
	}
	for name, r := range live.Relations {
		if err := fillTable(ctx, client, parser, r.Table); err != nil {
			return nil, nil, fmt.Errorf("smig: fetching INFO FOR TABLE %s: %w", name, err)
		}
	}

	return live, parser.Warnings, nil
}

func fillTable(ctx context.Context, client dbclient.Client, parser *introspect.Parser, t *schema.Table) error {
	results, err := client.ExecuteQuery(ctx, fmt.Sprintf("INFO FOR TABLE %s;", t.Name))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}
	parser.ParseTable(t, flattenDefines(results[0].Result))
	return nil
}

// flattenDefines walks a decoded `INFO FOR ...` response (a tree of
// category -> name -> DDL-string maps) and returns every string leaf,
// in no particular order; dispatch in ParseDatabase/ParseTable keys off
// each statement's own DEFINE keyword, so the grouping the database
// used to report them doesn't matter.
func flattenDefines(v any) []string {
	var out []string
	switch t := v.(type) {
	case string:
		out = append(out, t)
	case map[string]any:
		for _, child := range t {
			out = append(out, flattenDefines(child)...)
		}
	case []any:
		for _, child := range t {
			out = append(out, flattenDefines(child)...)
		}
	}
	return out
}
