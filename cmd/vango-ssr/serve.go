package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vango-dev/ssr"
	"github.com/vango-dev/ssr/internal/config"
	"github.com/vango-dev/ssr/pkg/cache"
	"github.com/vango-dev/ssr/pkg/serializer"
	"github.com/vango-dev/ssr/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve POST /render/{tag} with a JSON props body, plus /components,
/healthz and /metrics.

Caching follows the cache section of the configuration: memory (default),
redis or none.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				e.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				e.cfg.Server.Port = port
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			c, err := newCache(e.cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			r := ssr.New(
				ssr.WithLogger(e.logger),
				ssr.WithSerializer(serializer.New(serializer.Config{
					Pretty: e.cfg.Serializer.Pretty,
					Indent: e.cfg.Serializer.Indent,
				})),
			)
			srv := server.New(e.registry,
				server.WithRenderer(r),
				server.WithCache(c, e.cfg.CacheTTL()),
				server.WithLogger(e.logger),
			)

			printBanner(cmd.OutOrStdout())
			success(cmd.OutOrStdout(), "Serving %d components on http://%s", e.registry.Len(), e.cfg.Address())

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, e.cfg.Address())
		},
	}

	cmd.Flags().StringVar(&host, "host", config.DefaultHost, "Host to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", config.DefaultPort, "Port to listen on")
	return cmd
}

// newCache builds the configured cache backend.
func newCache(cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		var opts []cache.RedisOption
		if cfg.Cache.Redis.Prefix != "" {
			opts = append(opts, cache.WithPrefix(cfg.Cache.Redis.Prefix))
		}
		return &redisCache{Redis: cache.NewRedis(client, opts...), client: client}, nil
	case config.CacheNone:
		return cache.Nop{}, nil
	default:
		return cache.NewMemory(cache.WithMaxEntries(cfg.Cache.MaxEntries)), nil
	}
}

// redisCache closes the client it owns along with the cache.
type redisCache struct {
	*cache.Redis
	client *redis.Client
}

func (c *redisCache) Close() error {
	_ = c.Redis.Close()
	return c.client.Close()
}
