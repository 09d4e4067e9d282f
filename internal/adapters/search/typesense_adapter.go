package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	tsclient "github.com/kishore28kumar/pulss/internal/infrastructure/clients/typesense"
)

const collectionName = "products"

// Typesense returns at most 250 documents per page.
const snapshotPageSize = 250

// TypesenseAdapter implements CatalogProvider over a Typesense products
// collection. It is an alternative to the Postgres catalog adapter for
// deployments that already index their catalog for storefront browsing.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements CatalogProvider
var _ providers.CatalogProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense catalog adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the products collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "tenant_id", Type: "string", Facet: pointer.True()},
			{Name: "name", Type: "string"},
			{Name: "brand", Type: "string", Optional: pointer.True()},
			{Name: "description", Type: "string", Optional: pointer.True()},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "price", Type: "float"},
			{Name: "currency", Type: "string"},
			{Name: "requires_prescription", Type: "bool"},
			{Name: "uses", Type: "string[]", Optional: pointer.True()},
			{Name: "tags", Type: "string[]", Optional: pointer.True()},
			{Name: "position", Type: "int32"},
			{Name: "is_active", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("position"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a product document
func (a *TypesenseAdapter) Index(ctx context.Context, product *entities.Product) error {
	document := map[string]interface{}{
		"id":                    product.ID,
		"tenant_id":             product.TenantID,
		"name":                  product.Name,
		"brand":                 product.Brand,
		"description":           product.Description,
		"category":              product.Category,
		"price":                 product.Price,
		"currency":              product.Currency,
		"requires_prescription": product.RequiresPrescription,
		"uses":                  product.Uses,
		"tags":                  product.Tags,
		"position":              product.Position,
		"is_active":             product.IsActive,
		"created_at":            product.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index product: %w", err)
	}

	return nil
}

// Delete removes a product from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete product from index: %w", err)
	}
	return nil
}

// FetchActiveProducts returns a tenant's active products in stable catalog
// order, paging through the collection until exhausted.
func (a *TypesenseAdapter) FetchActiveProducts(ctx context.Context, tenantID string) ([]*entities.Product, error) {
	products := []*entities.Product{}

	for page := 1; ; page++ {
		searchParams := &api.SearchCollectionParams{
			Q:        pointer.String("*"),
			QueryBy:  pointer.String("name"),
			FilterBy: pointer.String(fmt.Sprintf("tenant_id:=%s && is_active:=true", tenantID)),
			SortBy:   pointer.String("position:asc,created_at:asc"),
			Page:     pointer.Int(page),
			PerPage:  pointer.Int(snapshotPageSize),
		}

		result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch active products: %w", err)
		}
		if result.Hits == nil || len(*result.Hits) == 0 {
			break
		}

		for _, hit := range *result.Hits {
			products = append(products, documentToProduct(*hit.Document))
		}

		if len(*result.Hits) < snapshotPageSize {
			break
		}
	}

	return products, nil
}

// documentToProduct reconstructs a product from a Typesense document.
// Typesense returns map[string]interface{}, so every field is cast safely.
func documentToProduct(doc map[string]interface{}) *entities.Product {
	product := &entities.Product{}

	if val, ok := doc["id"].(string); ok {
		product.ID = val
	}
	if val, ok := doc["tenant_id"].(string); ok {
		product.TenantID = val
	}
	if val, ok := doc["name"].(string); ok {
		product.Name = val
	}
	if val, ok := doc["brand"].(string); ok {
		product.Brand = val
	}
	if val, ok := doc["description"].(string); ok {
		product.Description = val
	}
	if val, ok := doc["category"].(string); ok {
		product.Category = val
	}
	if val, ok := doc["price"].(float64); ok {
		product.Price = val
	}
	if val, ok := doc["currency"].(string); ok {
		product.Currency = val
	}
	if val, ok := doc["requires_prescription"].(bool); ok {
		product.RequiresPrescription = val
	}
	if val, ok := doc["position"].(float64); ok {
		product.Position = int(val)
	}
	if val, ok := doc["is_active"].(bool); ok {
		product.IsActive = val
	}
	if val, ok := doc["created_at"].(float64); ok {
		product.CreatedAt = time.Unix(int64(val), 0)
	}

	product.Uses = stringSlice(doc["uses"])
	product.Tags = stringSlice(doc["tags"])

	return product
}

func stringSlice(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
