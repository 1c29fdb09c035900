// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xataio/smig/cmd/flags"
	"github.com/xataio/smig/internal/config"
	"github.com/xataio/smig/pkg/dbclient"
	"github.com/xataio/smig/pkg/ledger"
	"github.com/xataio/smig/pkg/schema"
)

// Version is the smig version.
var Version = "development"

// connectTimeout bounds the initial connect call, per §4.6's
// "recommendation: 10 seconds".
const connectTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:          "smig",
	Short:        "Automatic schema migrations for SurrealDB",
	SilenceUsage: true,
	Version:      Version,
}

func init() {
	flags.ConnectionFlags(rootCmd)
}

// Execute runs the root command.
func Execute() error {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(rollbackCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(testCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(mermaidCmd())

	return rootCmd.Execute()
}

// resolved bundles one invocation's resolved Config and connected
// MigrationManager, so each subcommand's RunE only has to call connect
// once and defer Close.
type resolved struct {
	cfg    *config.Config
	client *dbclient.HTTPClient
	mgr    *ledger.MigrationManager
}

func connect(cmd *cobra.Command) (*resolved, error) {
	cfg, err := config.Resolve(cmd.Flags(), flags.ConfigPath(cmd))
	if err != nil {
		return nil, err
	}

	client := dbclient.New(dbclient.Config{
		URL:       cfg.URL,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.URL, err)
	}

	return &resolved{cfg: cfg, client: client, mgr: ledger.NewManager(client)}, nil
}

func (r *resolved) close() {
	r.client.Close()
}

func (r *resolved) loadSchema() (*schema.Schema, error) {
	if _, err := os.Stat(r.cfg.Schema); errors.Is(err, os.ErrNotExist) {
		return nil, errSchemaNotFound
	}
	return schema.LoadFromFile(r.cfg.Schema)
}
