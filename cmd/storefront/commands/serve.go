package commands

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/NetSkoocKlim/storefront/cmd/storefront/output"
	"github.com/NetSkoocKlim/storefront/pkg/auth"
	"github.com/NetSkoocKlim/storefront/pkg/config"
	"github.com/NetSkoocKlim/storefront/pkg/httpapi"
	"github.com/NetSkoocKlim/storefront/pkg/stores"
)

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

Configuration comes from the environment (or a .env file):
  DATABASE_URL  PostgreSQL connection URL (or DB_USER/DB_PASS/DB_HOST/DB_PORT/DB_NAME)
  JWT_SECRET    Token signing key (required)
  TOKEN_TTL     Token lifetime, e.g. 30m (default 30m)
  ADDR          Listen address (default :8000)
  REDIS_ADDR    Optional Redis address for the shared token revocation list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		return err
	}
	if verbose {
		output.Info("connected to database")
	}

	var revoked auth.RevocationList
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer client.Close()
		revoked = auth.NewRedisRevocationList(client)
		if verbose {
			output.Info("token revocation list backed by redis at %s", cfg.RedisAddr)
		}
	} else {
		revoked = auth.NewMemoryRevocationList()
		output.Muted("REDIS_ADDR not set; revoked tokens are tracked in memory only")
	}

	users := stores.NewUserStore(db)
	authority := auth.NewAuthority(users, []byte(cfg.JWTSecret), revoked)

	api := httpapi.New(httpapi.Deps{
		Users:      users,
		Categories: stores.NewCategoryStore(db),
		Products:   stores.NewProductStore(db),
		Reviews:    stores.NewReviewStore(db),
		Authority:  authority,
		TokenTTL:   cfg.TokenTTL,
	})

	output.Success("listening on %s", cfg.Addr)
	return api.Router().Listen(cfg.Addr)
}
