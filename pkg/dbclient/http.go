// SPDX-License-Identifier: Apache-2.0

package dbclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloudflare/backoff"
)

const (
	maxBackoffDuration = 1 * time.Minute
	backoffInterval    = 500 * time.Millisecond
	maxRetries         = 5
)

// Config describes how to reach and authenticate against a SurrealDB
// HTTP endpoint.
type Config struct {
	URL       string // e.g. "http://localhost:8000"
	Namespace string
	Database  string
	Username  string
	Password  string
}

// HTTPClient is a Client backed by SurrealDB's HTTP /sql and /key
// endpoints, retrying transient connection and server errors with
// exponential backoff, the same role RDB plays for Postgres in the
// teacher's pkg/db.
type HTTPClient struct {
	cfg    Config
	client *http.Client
}

// New returns a Client for cfg. Connect must be called before use.
func New(cfg Config) *HTTPClient {
	return &HTTPClient{cfg: cfg, client: &http.Client{Timeout: 30 * time.Second}}
}

func (c *HTTPClient) Connect(ctx context.Context) error {
	_, err := c.ExecuteQuery(ctx, "INFO FOR DB;")
	return err
}

func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	b := backoff.New(maxBackoffDuration, backoffInterval)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.cfg.URL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("NS", c.cfg.Namespace)
		req.Header.Set("DB", c.cfg.Database)
		if c.cfg.Username != "" {
			req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if sleepErr := sleepCtx(ctx, b.Duration()); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("smig: database returned %d: %s", resp.StatusCode, respBody)
			if sleepErr := sleepCtx(ctx, b.Duration()); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("smig: database returned %d: %s", resp.StatusCode, respBody)
		}

		return respBody, nil
	}
	return nil, fmt.Errorf("smig: exhausted retries against database: %w", lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

type sqlResult struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Result any    `json:"result"`
}

func (c *HTTPClient) ExecuteQuery(ctx context.Context, ddl string) ([]QueryResult, error) {
	respBody, err := c.do(ctx, http.MethodPost, "/sql", []byte(ddl))
	if err != nil {
		return nil, err
	}

	var raw []sqlResult
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("smig: decoding query response: %w", err)
	}

	out := make([]QueryResult, 0, len(raw))
	for _, r := range raw {
		qr := QueryResult{Status: r.Status, Time: r.Time, Result: r.Result}
		if r.Status != "OK" {
			if msg, ok := r.Result.(string); ok {
				qr.Error = msg
			}
		}
		out = append(out, qr)
	}
	return out, nil
}

func (c *HTTPClient) Create(ctx context.Context, table string, data map[string]any) (map[string]any, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	respBody, err := c.do(ctx, http.MethodPost, "/key/"+table, body)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, fmt.Errorf("smig: decoding create response: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("smig: create returned no record")
	}
	return rows[0], nil
}

func (c *HTTPClient) Select(ctx context.Context, target string) ([]map[string]any, error) {
	respBody, err := c.do(ctx, http.MethodGet, "/key/"+target, nil)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(respBody, &rows); err != nil {
		return nil, fmt.Errorf("smig: decoding select response: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) Delete(ctx context.Context, target string) error {
	_, err := c.do(ctx, http.MethodDelete, "/key/"+target, nil)
	return err
}
