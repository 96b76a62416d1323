package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NetSkoocKlim/storefront/pkg/config"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

var (
	// Global flags
	envFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront - e-commerce backend API",
	Long: `Storefront is an e-commerce backend with user accounts, a category tree,
a product catalog, and product reviews.

Commands:
  serve   - Run the HTTP API server
  initdb  - Create the database schema`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file to load before reading the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// openDatabase connects using whichever database settings are configured:
// a full URL, or the discrete DB_* parts.
func openDatabase(ctx context.Context, cfg *config.Config) (*storage.DB, error) {
	if cfg.DatabaseURL != "" {
		return storage.ConnectWithURL(ctx, cfg.DatabaseURL)
	}
	return storage.Connect(ctx, cfg.DB)
}
