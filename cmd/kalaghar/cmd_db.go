package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/config"
	"github.com/shashiranjanraj/kalaghar/database/seeders"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
)

// bootStore loads config and opens the configured store. Open migrates.
func bootStore(ctx context.Context) (*repositories.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	if err := logger.Setup(); err != nil {
		return nil, err
	}
	return repositories.Open(ctx, config.StoreDriver())
}

// kalaghar migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables (SQL) or indexes (MongoDB) for the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx) //nolint:errcheck

		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s store.\n", store.Driver)
		return nil
	},
}

// kalaghar seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := bootStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close(ctx) //nolint:errcheck

		fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
		return seeders.RunAll(ctx, store, cmd.OutOrStdout())
	},
}
