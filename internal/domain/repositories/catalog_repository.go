package repositories

import (
	"context"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
)

// CatalogRepository manages the tenant product catalog. It embeds
// CatalogProvider so the same adapter can back both the search read path
// and catalog maintenance.
type CatalogRepository interface {
	providers.CatalogProvider

	// Create inserts a new product
	Create(ctx context.Context, product *entities.Product) error

	// Update replaces a product's mutable fields
	Update(ctx context.Context, product *entities.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// Deactivate hides a product from search without deleting it
	Deactivate(ctx context.Context, id string) error
}
