package main

import (
	"context"
	"log"
	"os"

	"github.com/kishore28kumar/pulss/internal/adapters/database"
	"github.com/kishore28kumar/pulss/internal/adapters/search"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/postgres"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/typesense"
	"github.com/kishore28kumar/pulss/internal/infrastructure/observability"
	"github.com/kishore28kumar/pulss/pkg/config"
)

// Backfills the Typesense products collection from Postgres for one tenant.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("ENV"))

	tenantID := os.Getenv("INDEX_TENANT_ID")
	if tenantID == "" {
		log.Fatal("INDEX_TENANT_ID is required")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Fatalf("Failed to connect to Typesense: %v", err)
	}

	ctx := context.Background()

	catalog := database.NewCatalogAdapter(pgClient)
	index := search.NewTypesenseAdapter(tsClient)

	if err := index.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to init schema: %v", err)
	}

	products, err := catalog.FetchActiveProducts(ctx, tenantID)
	if err != nil {
		log.Fatalf("Failed to fetch products: %v", err)
	}

	indexed := 0
	for _, product := range products {
		if err := index.Index(ctx, product); err != nil {
			log.Printf("Failed to index product %s: %v", product.ID, err)
			continue
		}
		indexed++
	}

	log.Printf("Indexed %d/%d products for tenant %s", indexed, len(products), tenantID)
}
