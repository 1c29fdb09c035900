// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file smig looks for when --config is not
// given.
const DefaultFileName = "smig.config.toml"

// Environment is one named (or the top-level, unnamed) block of
// connection settings in a smig.config.toml file. Fields left empty do
// not override anything.
type Environment struct {
	URL       string `toml:"url" json:"url,omitempty"`
	Namespace string `toml:"namespace" json:"namespace,omitempty"`
	Database  string `toml:"database" json:"database,omitempty"`
	Username  string `toml:"username" json:"username,omitempty"`
	Password  string `toml:"password" json:"password,omitempty"`
	Schema    string `toml:"schema" json:"schema,omitempty"`
}

func (e Environment) mergeInto(cfg *Config) {
	if e.URL != "" {
		cfg.URL = e.URL
	}
	if e.Namespace != "" {
		cfg.Namespace = e.Namespace
	}
	if e.Database != "" {
		cfg.Database = e.Database
	}
	if e.Username != "" {
		cfg.Username = e.Username
	}
	if e.Password != "" {
		cfg.Password = e.Password
	}
	if e.Schema != "" {
		cfg.Schema = e.Schema
	}
}

// File is the decoded shape of smig.config.toml: top-level fields are
// the default environment, and [environments.NAME] tables are selected
// via --env.
type File struct {
	Environment
	Environments map[string]Environment `toml:"environments" json:"environments,omitempty"`
}

// loadFile reads and decodes path (defaulting to DefaultFileName). A
// missing file at the default path is not an error; a missing file at an
// explicitly given path is.
func loadFile(path string) (*File, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil, nil
		}
		return nil, err
	}

	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, err
	}
	if err := validateFile(&f); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &f, nil
}
