// SPDX-License-Identifier: Apache-2.0

package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const exportSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "appliedAt", "up", "down", "checksum", "downChecksum"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "appliedAt": {"type": "string"},
    "up": {"type": "string"},
    "down": {"type": "string"},
    "checksum": {"type": "string", "pattern": "^sha256\\."},
    "downChecksum": {"type": "string", "pattern": "^sha256\\."},
    "message": {"type": "string"}
  }
}`

var exportSchema = mustCompileExportSchema()

func mustCompileExportSchema() *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(exportSchemaJSON), &doc); err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("smig-ledger-export.json", doc); err != nil {
		panic(err)
	}
	sch, err := c.Compile("smig-ledger-export.json")
	if err != nil {
		panic(err)
	}
	return sch
}

type exportRecord struct {
	ID           string `json:"id"`
	AppliedAt    string `json:"appliedAt"`
	Up           string `json:"up"`
	Down         string `json:"down"`
	Checksum     string `json:"checksum"`
	DownChecksum string `json:"downChecksum"`
	Message      string `json:"message,omitempty"`
}

// Export renders m as the validated JSON document smig's `status --json`
// and scripted export callers consume, enforcing the checksum-prefix
// shape documented in §6.4 before the bytes ever leave the process.
func (m Migration) Export() ([]byte, error) {
	rec := exportRecord{
		ID:           m.ID,
		AppliedAt:    m.AppliedAt.Format(time.RFC3339Nano),
		Up:           m.Up,
		Down:         m.Down,
		Checksum:     m.Checksum,
		DownChecksum: m.DownChecksum,
		Message:      m.Message,
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("ledger: encoding export: %w", err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("ledger: decoding export for validation: %w", err)
	}
	if err := exportSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("ledger: export failed validation: %w", err)
	}

	return raw, nil
}
