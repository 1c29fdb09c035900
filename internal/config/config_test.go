// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("url", "", "")
	fs.String("namespace", "", "")
	fs.String("database", "", "")
	fs.String("username", "", "")
	fs.String("password", "", "")
	fs.String("schema", "", "")
	fs.String("env", "", "")
	return fs
}

func TestResolveDefaultsWhenNothingElseSet(t *testing.T) {
	t.Setenv("SMIG_URL", "")
	cfg, err := Resolve(newFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, defaults.URL, cfg.URL)
	assert.Equal(t, defaults.Namespace, cfg.Namespace)
}

func TestResolveFlagBeatsFileBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smig.config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
url = "from-file"
namespace = "file-ns"
`), 0o644))

	t.Setenv("SMIG_URL", "from-env")
	t.Setenv("SMIG_DATABASE", "env-db")

	flags := newFlags(t)
	require.NoError(t, flags.Set("url", "from-flag"))

	cfg, err := Resolve(flags, path)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.URL, "flag must win over file and env")
	assert.Equal(t, "file-ns", cfg.Namespace, "file must win over default")
	assert.Equal(t, "env-db", cfg.Database, "env must win over default when file is silent")
}

func TestResolveNamedEnvironmentOverridesBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smig.config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
url = "base-url"

[environments.prod]
url = "prod-url"
`), 0o644))

	flags := newFlags(t)
	require.NoError(t, flags.Set("env", "prod"))

	cfg, err := Resolve(flags, path)
	require.NoError(t, err)
	assert.Equal(t, "prod-url", cfg.URL)
}

func TestResolveUnknownEnvironmentIsAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smig.config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[environments.staging]
url = "staging-url"
`), 0o644))

	flags := newFlags(t)
	require.NoError(t, flags.Set("env", "prod"))

	_, err := Resolve(flags, path)
	assert.ErrorContains(t, err, "staging")
}
