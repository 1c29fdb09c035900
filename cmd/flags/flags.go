// SPDX-License-Identifier: Apache-2.0

package flags

import "github.com/spf13/cobra"

// ConnectionFlags registers the flags every smig subcommand accepts, per
// §6.3: connection details, the namespace/database coordinates, the
// schema module to load, and the named environment to select from
// smig.config.toml.
func ConnectionFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("url", "", "SurrealDB endpoint URL")
	cmd.PersistentFlags().String("namespace", "", "SurrealDB namespace")
	cmd.PersistentFlags().String("database", "", "SurrealDB database")
	cmd.PersistentFlags().String("username", "", "SurrealDB username")
	cmd.PersistentFlags().String("password", "", "SurrealDB password")
	cmd.PersistentFlags().String("schema", "", "path to the compiled schema module")
	cmd.PersistentFlags().String("env", "", "named environment to select from smig.config.toml")
	cmd.PersistentFlags().String("config", "", "path to smig.config.toml")
	cmd.PersistentFlags().Bool("debug", false, "accepted but read by no command; prints nothing extra")
}

func ConfigPath(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("config")
	return v
}

func Debug(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("debug")
	return v
}
