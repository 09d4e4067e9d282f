package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kishore28kumar/pulss/internal/adapters/database"
	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/repositories"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/postgres"
	"github.com/kishore28kumar/pulss/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				search_events,
				products
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	catalog := database.NewCatalogAdapter(pgClient)

	pharmacyID := seedTenant(ctx, catalog, "demo-pharmacy", pharmacyCatalog())
	groceryID := seedTenant(ctx, catalog, "demo-grocery", groceryCatalog())

	log.Printf("Seeded pharmacy tenant %s and grocery tenant %s", pharmacyID, groceryID)
}

func seedTenant(ctx context.Context, catalog repositories.CatalogRepository, tenantID string, products []*entities.Product) string {
	now := time.Now()
	for i, product := range products {
		if product.ID == "" {
			product.ID = uuid.NewString()
		}
		product.TenantID = tenantID
		product.Position = i
		product.IsActive = true
		product.CreatedAt = now
		product.UpdatedAt = now
		if product.Currency == "" {
			product.Currency = "NGN"
		}

		if err := catalog.Create(ctx, product); err != nil {
			log.Printf("Failed to seed %s for %s: %v", product.Name, tenantID, err)
		}
	}
	log.Printf("Seeded %d products for tenant %s", len(products), tenantID)
	return tenantID
}

func pharmacyCatalog() []*entities.Product {
	return []*entities.Product{
		{
			ID:          "seed-paracetamol-500",
			Name:        "Paracetamol 500mg",
			Brand:       "Emzor",
			Description: "Pain reliever and fever reducer",
			Category:    "Pain Relief",
			Price:       350,
			Uses:        []string{"headache", "fever", "pain"},
			Tags:        []string{"analgesic", "otc"},
		},
		{
			ID:          "seed-crocin-advance",
			Name:        "Crocin Advance",
			Brand:       "GSK",
			Description: "Fast-acting paracetamol tablets for headache and fever",
			Category:    "Pain Relief",
			Price:       520,
			Uses:        []string{"headache", "fever"},
			Tags:        []string{"analgesic", "paracetamol"},
		},
		{
			ID:          "seed-ibuprofen-400",
			Name:        "Ibuprofen 400mg",
			Brand:       "Advil",
			Description: "Anti-inflammatory pain relief",
			Category:    "Pain Relief",
			Price:       600,
			Uses:        []string{"pain", "inflammation", "headache"},
			Tags:        []string{"nsaid", "otc"},
		},
		{
			ID:                   "seed-amoxicillin-500",
			Name:                 "Amoxicillin 500mg",
			Brand:                "GSK",
			Description:          "Broad spectrum antibiotic capsules",
			Category:             "Antibiotics",
			Price:                1200,
			RequiresPrescription: true,
			Uses:                 []string{"bacterial infection"},
			Tags:                 []string{"antibiotic", "prescription"},
		},
		{
			ID:          "seed-vitamin-c-1000",
			Name:        "Vitamin C 1000mg",
			Brand:       "Nature's Field",
			Description: "Immune support effervescent tablets",
			Category:    "Vitamins & Supplements",
			Price:       2500,
			Uses:        []string{"immunity", "cold"},
			Tags:        []string{"vitamin", "supplement"},
		},
		{
			ID:          "seed-loratadine-10",
			Name:        "Loratadine 10mg",
			Brand:       "Claritin",
			Description: "Non-drowsy antihistamine for allergy relief",
			Category:    "Allergy",
			Price:       800,
			Uses:        []string{"allergy", "hay fever", "itching"},
			Tags:        []string{"antihistamine", "otc"},
		},
		{
			ID:          "seed-ors-sachets",
			Name:        "ORS Sachets",
			Brand:       "Emzor",
			Description: "Oral rehydration salts for dehydration",
			Category:    "Digestive Health",
			Price:       150,
			Uses:        []string{"dehydration", "diarrhea"},
			Tags:        []string{"rehydration", "otc"},
		},
	}
}

func groceryCatalog() []*entities.Product {
	return []*entities.Product{
		{
			Name:        "Basmati Rice 5kg",
			Brand:       "Royal Stallion",
			Description: "Long grain aromatic basmati rice",
			Category:    "Grains & Rice",
			Price:       9500,
			Tags:        []string{"rice", "staple"},
		},
		{
			Name:        "Whole Wheat Bread",
			Brand:       "Butterfield",
			Description: "Freshly baked whole wheat sandwich loaf",
			Category:    "Bakery",
			Price:       1200,
			Tags:        []string{"bread", "bakery"},
		},
		{
			Name:        "Semi-Skimmed Milk 1L",
			Brand:       "Peak",
			Description: "Fresh semi-skimmed dairy milk",
			Category:    "Dairy",
			Price:       1800,
			Tags:        []string{"milk", "dairy"},
		},
		{
			Name:        "Roma Tomatoes 1kg",
			Description: "Fresh ripe roma tomatoes",
			Category:    "Fresh Produce",
			Price:       1500,
			Tags:        []string{"vegetable", "fresh"},
		},
		{
			Name:        "Frozen Chicken Breast 1kg",
			Brand:       "Zartech",
			Description: "Skinless boneless chicken breast fillets",
			Category:    "Meat & Poultry",
			Price:       5200,
			Tags:        []string{"chicken", "protein", "frozen"},
		},
		{
			Name:        "Groundnut Oil 3L",
			Brand:       "Kings",
			Description: "Pure refined groundnut cooking oil",
			Category:    "Cooking Essentials",
			Price:       8900,
			Tags:        []string{"oil", "cooking"},
		},
	}
}
