package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ShopCart/internal/cart"
	"ShopCart/pkg/kit"
)

func main() {
	service := "cart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8083")
	catalogURL := getenv("CATALOG_URL", "http://catalog:8082")

	var store cart.Store
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := kit.OpenPostgres(dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		store = cart.NewPostgresStore(db)
	} else {
		store = cart.NewMemStore()
	}

	s := &cart.Server{
		Store:   store,
		Catalog: cart.NewCatalogClient(catalogURL),
		Log:     log,
	}

	h := cart.NewHandler(s, cart.HTTPDeps{
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

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
