package cmd

import (
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/engine"
	"github.com/LucasAust/forecaster/internal/server"
	"github.com/LucasAust/forecaster/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagAddr    string
	flagNoCache bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the forecast HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Serve without the result cache")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	addr := cfg.Server.Addr
	if flagAddr != "" {
		addr = flagAddr
	}

	var cache *store.Cache
	if !cfg.Server.CacheDisabled && !flagNoCache {
		path := cfg.Server.CachePath
		if path == "" {
			path = filepath.Join(config.Dir(), "cache.db")
		}
		ttl := time.Duration(cfg.Server.CacheTTLHours) * time.Hour
		cache, err = store.Open(path, ttl)
		if err != nil {
			log.WithError(err).Warn("result cache unavailable, serving uncached")
		} else {
			defer cache.Close()
			if n, err := cache.Prune(cmd.Context()); err == nil && n > 0 {
				log.WithField("rows", n).Info("pruned expired cache entries")
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{Addr: addr, Cache: cache}, engine.New(cfg), log)
	return srv.Run(ctx)
}
