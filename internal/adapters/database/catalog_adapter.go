package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/repositories"
	"github.com/kishore28kumar/pulss/internal/infrastructure/clients/postgres"
	apperrors "github.com/kishore28kumar/pulss/pkg/errors"
)

var productColumns = []interface{}{
	"id", "tenant_id", "name", "brand", "description", "category",
	"price", "currency", "requires_prescription", "uses", "tags",
	"position", "is_active", "created_at", "updated_at",
}

// CatalogAdapter implements CatalogRepository over Postgres
type CatalogAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCatalogAdapter creates a new catalog adapter
func NewCatalogAdapter(client *postgres.Client) repositories.CatalogRepository {
	return &CatalogAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a new product
func (a *CatalogAdapter) Create(ctx context.Context, product *entities.Product) error {
	query, args, err := a.db.Insert("products").Rows(a.toRecord(product)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create product", err)
	}

	return nil
}

// Update replaces a product's mutable fields
func (a *CatalogAdapter) Update(ctx context.Context, product *entities.Product) error {
	product.UpdatedAt = time.Now()

	record := a.toRecord(product)
	delete(record, "id")
	delete(record, "tenant_id")
	delete(record, "created_at")

	query, args, err := a.db.Update("products").
		Set(record).
		Where(goqu.Ex{"id": product.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", product.ID))
	}

	return nil
}

// GetByID retrieves a product by ID
func (a *CatalogAdapter) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	product, err := a.scanProduct(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get product", err)
	}

	return product, nil
}

// FetchActiveProducts returns the active catalog snapshot for a tenant in
// stable display order.
func (a *CatalogAdapter) FetchActiveProducts(ctx context.Context, tenantID string) ([]*entities.Product, error) {
	query, args, err := a.db.Select(productColumns...).
		From("products").
		Where(goqu.Ex{"tenant_id": tenantID, "is_active": true}).
		Order(goqu.I("position").Asc(), goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch active products", err)
	}
	defer rows.Close()

	products := []*entities.Product{}
	for rows.Next() {
		product, err := a.scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan product", err)
		}
		products = append(products, product)
	}

	return products, nil
}

// Deactivate hides a product from search without deleting it
func (a *CatalogAdapter) Deactivate(ctx context.Context, id string) error {
	query, args, err := a.db.Update("products").
		Set(goqu.Record{"is_active": false, "updated_at": time.Now()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to deactivate product", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}

	return nil
}

func (a *CatalogAdapter) toRecord(product *entities.Product) goqu.Record {
	return goqu.Record{
		"id":                    product.ID,
		"tenant_id":             product.TenantID,
		"name":                  product.Name,
		"brand":                 sql.NullString{String: product.Brand, Valid: product.Brand != ""},
		"description":           sql.NullString{String: product.Description, Valid: product.Description != ""},
		"category":              sql.NullString{String: product.Category, Valid: product.Category != ""},
		"price":                 product.Price,
		"currency":              product.Currency,
		"requires_prescription": product.RequiresPrescription,
		"uses":                  pq.Array(product.Uses),
		"tags":                  pq.Array(product.Tags),
		"position":              product.Position,
		"is_active":             product.IsActive,
		"created_at":            product.CreatedAt,
		"updated_at":            product.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *CatalogAdapter) scanProduct(row rowScanner) (*entities.Product, error) {
	product := &entities.Product{}
	var brand, description, category sql.NullString

	err := row.Scan(
		&product.ID,
		&product.TenantID,
		&product.Name,
		&brand,
		&description,
		&category,
		&product.Price,
		&product.Currency,
		&product.RequiresPrescription,
		pq.Array(&product.Uses),
		pq.Array(&product.Tags),
		&product.Position,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Brand = brand.String
	product.Description = description.String
	product.Category = category.String

	return product, nil
}
