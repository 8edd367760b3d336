package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sightline/internal/server"
	"github.com/matzehuels/sightline/pkg/cache"
	"github.com/matzehuels/sightline/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr          string
		noCache       bool
		redisAddr     string
		redisPassword string
		redisDB       int
		shutdown      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the synthesis HTTP API",
		Long: `Run the synthesis HTTP API.

POST a TOML profile to /v1/sections and receive the rendered artifact; the
format query parameter selects svg (default), json, csv, png, or pdf.
GET /healthz reports liveness.

Artifacts are cached on disk by default. With --redis-addr the cache moves
to Redis, which lets multiple instances share rendered output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := serveCache(cmd, noCache, redisAddr, redisPassword, redisDB)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(store, nil, c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:            addr,
				ShutdownTimeout: shutdown,
			}, runner, c.Logger)

			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Redis address for a shared artifact cache (host:port)")
	cmd.Flags().StringVar(&redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().DurationVar(&shutdown, "shutdown-timeout", 10*time.Second, "graceful shutdown timeout")

	return cmd
}

// serveCache picks the cache backend for the server: Redis when configured,
// the XDG file cache otherwise.
func serveCache(cmd *cobra.Command, noCache bool, redisAddr, redisPassword string, redisDB int) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(cmd.Context(), cache.RedisConfig{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", redisAddr, err)
		}
		return store, nil
	}
	return newCache(false)
}
