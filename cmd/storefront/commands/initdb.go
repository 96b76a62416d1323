package commands

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/NetSkoocKlim/storefront/cmd/storefront/output"
	"github.com/NetSkoocKlim/storefront/pkg/config"
)

// initdbCmd creates the database schema
var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database schema",
	Long: `Create the application tables and indexes.

All statements are idempotent, so initdb can be run against an already
initialized database without harm.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInitDB(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB(ctx context.Context) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	}

	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ApplySchema(ctx); err != nil {
		output.Error("schema creation failed: %v", err)
		return err
	}

	output.Success("database schema is ready")
	return nil
}
