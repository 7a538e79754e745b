package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipecheck/pipecheck/pkg/cache"
	"github.com/pipecheck/pipecheck/pkg/config"
	"github.com/pipecheck/pipecheck/pkg/server"
)

// shutdownTimeout bounds how long serve waits for in-flight requests on exit.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the pipeline validation HTTP service",
		Long: `Run the pipeline validation HTTP service.

The service exposes:
  GET  /                  liveness
  GET  /health            liveness
  POST /pipelines/parse   validate a pipeline, returns counts and DAG verdict

Without --config the built-in defaults are used (listen on :8000, editor
origins on localhost:3000, caching disabled).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			c.Logger.Debug("config loaded", "config", cfg.String())

			backend, err := c.openCache(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer backend.Close()

			srv := server.New(cfg, backend, c.Logger)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config file")

	return cmd
}

// openCache builds the configured verdict cache backend.
func (c *CLI) openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.BackendFile:
		dir := cfg.Cache.Dir
		if dir == "" {
			// Default to the directory "pipecheck cache clear|path" manages.
			var err error
			if dir, err = cacheDir(); err != nil {
				return nil, err
			}
		}
		c.Logger.Debug("verdict cache", "backend", "file", "dir", dir)
		return cache.NewFileCache(dir)
	case config.BackendRedis:
		c.Logger.Debug("verdict cache", "backend", "redis", "addr", cfg.Cache.RedisAddr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}
