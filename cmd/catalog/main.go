package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ShopCart/internal/catalog"
	"ShopCart/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8082")

	s := &catalog.Server{Log: log}
	setupStore(s, log)

	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// setupStore picks the catalog source: Postgres, a YAML file, a remote
// endpoint fetched once at startup, or the seeded demo catalog.
func setupStore(s *catalog.Server, log *zap.Logger) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := kit.OpenPostgres(dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		s.Store = catalog.NewPostgresStore(db)
		return
	}

	if path := os.Getenv("CATALOG_FILE"); path != "" {
		products, err := catalog.LoadFile(path)
		if err != nil {
			log.Fatal("load catalog file failed", zap.String("path", path), zap.Error(err))
		}
		store, err := catalog.NewMemStore(products)
		if err != nil {
			log.Fatal("build catalog failed", zap.Error(err))
		}
		s.Store = store
		log.Info("catalog loaded from file", zap.String("path", path), zap.Int("products", len(products)))
		return
	}

	if url := os.Getenv("CATALOG_URL"); url != "" {
		store := catalog.NewEmptyStore()
		loader := catalog.NewLoader(store, log)
		loader.Start(context.Background(), url)

		s.Store = store
		s.Loader = loader
		return
	}

	s.Store = catalog.NewDemoStore()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
