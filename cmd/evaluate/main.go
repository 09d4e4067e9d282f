package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/kishore28kumar/pulss/internal/adapters/database"
	"github.com/kishore28kumar/pulss/internal/application/services"
	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/evaluation"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/openai"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/postgres"
	"github.com/kishore28kumar/pulss/internal/infrastructure/observability"
	"github.com/kishore28kumar/pulss/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("ENV"))
	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(context.Background(), cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Fatalf("Failed to set up telemetry: %v", err)
		}
		defer shutdown(context.Background())
	}

	tenantID := os.Getenv("EVAL_TENANT_ID")
	if tenantID == "" {
		log.Fatal("EVAL_TENANT_ID is required")
	}
	business := entities.BusinessType(os.Getenv("EVAL_BUSINESS_TYPE"))
	if business == "" {
		business = entities.BusinessTypeGeneral
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pgClient.Close()

	catalog := database.NewCatalogAdapter(pgClient)
	searchService := services.NewSearchService(tenantID, business, catalog, &cfg.Search)

	// Intent analysis is optional; without it the evaluation scores the
	// lexical-only baseline.
	if cfg.OpenAI.APIKey != "" {
		intentClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Fatalf("Failed to create intent client: %v", err)
		}
		searchService.SetIntentProvider(intentClient)
	}

	goldenPath := os.Getenv("EVAL_GOLDEN_QUERIES")
	if goldenPath == "" {
		goldenPath = "config/golden_queries.json"
	}

	queries, err := evaluation.LoadGoldenQueries(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden queries: %v", err)
	}
	if err := evaluation.ValidateGoldenQueries(queries); err != nil {
		log.Fatalf("Invalid golden queries: %v", err)
	}

	runner := evaluation.NewRunner(searchService.Search)
	summary := runner.Run(context.Background(), queries)

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
