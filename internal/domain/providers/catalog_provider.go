package providers

import (
	"context"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
)

// CatalogProvider supplies the active, tenant-scoped product snapshot the
// search engine ranks over. The snapshot is borrowed read-only for the
// duration of one search call and must be returned in a stable order so
// that score ties rank deterministically.
type CatalogProvider interface {
	FetchActiveProducts(ctx context.Context, tenantID string) ([]*entities.Product, error)
}
