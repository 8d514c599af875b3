package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ProductAPI/internal/config"
	"ProductAPI/internal/product"
	"ProductAPI/pkg/kit"
)

func main() {
	service := "product"

	if err := config.LoadDotEnv(getenv("ENV_FILE", ".env")); err != nil {
		// logger is not built yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	cfg := config.Load()

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	store, closeStore := openStore(cfg, log)
	defer closeStore()

	s := &product.Server{
		Service: product.NewService(store, log),
		Log:     log,
	}

	h := product.NewHandler(s, product.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	if err := kit.RunHTTPServer(cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return
	}
	log.Info("http server stopped")
}

func openStore(cfg config.Config, log *zap.Logger) (product.Store, func()) {
	if cfg.StoreDriver != config.DriverPostgres {
		log.Info("using in-memory store")
		return product.NewStore(), func() {}
	}

	ctx := context.Background()

	db, err := kit.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open postgres", zap.Error(err))
	}
	if err := product.Migrate(ctx, db); err != nil {
		_ = db.Close()
		log.Fatal("migrate postgres", zap.Error(err))
	}

	log.Info("using postgres store")
	return product.NewPostgresStore(db), func() { _ = db.Close() }
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
