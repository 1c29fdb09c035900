// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const configSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "url": {"type": "string"},
    "namespace": {"type": "string"},
    "database": {"type": "string"},
    "username": {"type": "string"},
    "password": {"type": "string"},
    "schema": {"type": "string"},
    "environments": {
      "type": "object",
      "additionalProperties": {"$ref": "#/$defs/environment"}
    }
  },
  "$defs": {
    "environment": {
      "type": "object",
      "properties": {
        "url": {"type": "string"},
        "namespace": {"type": "string"},
        "database": {"type": "string"},
        "username": {"type": "string"},
        "password": {"type": "string"},
        "schema": {"type": "string"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

var configSchema = mustCompileConfigSchema()

func mustCompileConfigSchema() *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(configSchemaJSON), &doc); err != nil {
		panic(err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("smig-config.json", doc); err != nil {
		panic(err)
	}

	sch, err := c.Compile("smig-config.json")
	if err != nil {
		panic(err)
	}
	return sch
}

// validateFile checks the decoded smig.config.toml document against the
// config file's JSON Schema shape, catching a misspelled top-level key
// (e.g. "enviroments") or a stray field inside an environment block
// before Resolve ever reads individual fields out of it.
func validateFile(f *File) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("config: encoding smig.config.toml for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("config: decoding smig.config.toml for validation: %w", err)
	}
	if err := configSchema.Validate(doc); err != nil {
		return fmt.Errorf("config: smig.config.toml failed validation: %w", err)
	}
	return nil
}
