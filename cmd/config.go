// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xataio/smig/cmd/flags"
	"github.com/xataio/smig/internal/config"
)

func configCmd() *cobra.Command {
	var showSecrets bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration and available environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := printConfig(cmd, showSecrets); err != nil {
				return err
			}

			if !watch {
				return nil
			}

			fmt.Println("watching smig.config.toml for changes, press Ctrl+C to stop")
			stop, err := config.Watch(flags.ConfigPath(cmd), func(*config.File) {
				fmt.Println("--- smig.config.toml changed ---")
				_ = printConfig(cmd, showSecrets)
			})
			if err != nil {
				return err
			}
			defer stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the resolved password instead of masking it")
	cmd.Flags().BoolVar(&watch, "watch", false, "re-print the configuration whenever smig.config.toml changes")

	return cmd
}

func printConfig(cmd *cobra.Command, showSecrets bool) error {
	cfg, err := config.Resolve(cmd.Flags(), flags.ConfigPath(cmd))
	if err != nil {
		return err
	}

	password := "(hidden)"
	if showSecrets {
		password = cfg.Password
	}

	fmt.Printf("url:       %s\n", cfg.URL)
	fmt.Printf("namespace: %s\n", cfg.Namespace)
	fmt.Printf("database:  %s\n", cfg.Database)
	fmt.Printf("username:  %s\n", cfg.Username)
	fmt.Printf("password:  %s\n", password)
	fmt.Printf("schema:    %s\n", cfg.Schema)
	if cfg.Env != "" {
		fmt.Printf("env:       %s\n", cfg.Env)
	}

	names, err := config.ListEnvironments(flags.ConfigPath(cmd))
	if err != nil {
		return err
	}
	if len(names) > 0 {
		fmt.Printf("available environments: %v\n", names)
	}

	return nil
}
