// SPDX-License-Identifier: Apache-2.0

// Package config resolves smig's connection and schema settings from CLI
// flags, a smig.config.toml file, environment variables, and built-in
// defaults, in that order of precedence (§6.5).
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// env is the viper instance used purely as the SMIG_* environment-variable
// reader, the role viper.AutomaticEnv plays in the teacher's cmd/root.go;
// the file-beats-env precedence §6.5 requires is layered on top in
// Resolve, since viper's own precedence ranks env above config.
var env = newEnvReader()

func newEnvReader() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SMIG")
	v.AutomaticEnv()
	return v
}

// Config is the fully resolved set of connection and schema settings for
// one invocation.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	Schema    string
	Env       string
}

var defaults = Config{
	URL:       "http://localhost:8000",
	Namespace: "smig",
	Database:  "smig",
	Schema:    "schema.go",
}

// Resolve builds a Config from flags, an optional smig.config.toml found
// via configPath (empty means "smig.config.toml" in the working
// directory, if present), and SMIG_* environment variables, applying the
// precedence documented in §6.5: flags, then config file, then
// environment, then defaults.
func Resolve(flags *pflag.FlagSet, configPath string) (*Config, error) {
	cfg := defaults

	applyEnv(&cfg)

	file, err := loadFile(configPath)
	if err != nil {
		return nil, err
	}

	envName, _ := flags.GetString("env")
	if envName == "" {
		envName = env.GetString("ENV")
	}
	cfg.Env = envName

	if file != nil {
		if envName != "" {
			if _, ok := file.Environments[envName]; !ok {
				return nil, fmt.Errorf("config: unknown environment %q, available: %s", envName, availableEnvironments(file))
			}
		}
		applyFile(&cfg, file, envName)
	}

	if err := applyFlags(&cfg, flags); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ListEnvironments returns the named environments declared in the config
// file at configPath, sorted, for the `config` command's listing. It
// returns an empty slice if no config file is present.
func ListEnvironments(configPath string) ([]string, error) {
	file, err := loadFile(configPath)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}
	names := make([]string, 0, len(file.Environments))
	for name := range file.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func availableEnvironments(file *File) string {
	names := make([]string, 0, len(file.Environments))
	for name := range file.Environments {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "(none defined)"
	}
	return strings.Join(names, ", ")
}

func applyEnv(cfg *Config) {
	setIfPresent(&cfg.URL, "URL")
	setIfPresent(&cfg.Namespace, "NAMESPACE")
	setIfPresent(&cfg.Database, "DATABASE")
	setIfPresent(&cfg.Username, "USERNAME")
	setIfPresent(&cfg.Password, "PASSWORD")
	setIfPresent(&cfg.Schema, "SCHEMA")
}

func setIfPresent(dst *string, key string) {
	if v := env.GetString(key); v != "" {
		*dst = v
	}
}

func applyFile(cfg *Config, file *File, env string) {
	base := file.Environment
	base.mergeInto(cfg)

	if env == "" {
		return
	}
	if named, ok := file.Environments[env]; ok {
		named.mergeInto(cfg)
	}
}

func applyFlags(cfg *Config, flags *pflag.FlagSet) error {
	fields := []struct {
		name string
		dst  *string
	}{
		{"url", &cfg.URL},
		{"namespace", &cfg.Namespace},
		{"database", &cfg.Database},
		{"username", &cfg.Username},
		{"password", &cfg.Password},
		{"schema", &cfg.Schema},
	}
	for _, f := range fields {
		if flags.Changed(f.name) {
			v, err := flags.GetString(f.name)
			if err != nil {
				return fmt.Errorf("config: reading --%s: %w", f.name, err)
			}
			*f.dst = v
		}
	}
	return nil
}
