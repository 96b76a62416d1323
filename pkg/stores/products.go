package stores

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/repository"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// ProductParams carries the caller-supplied product fields for creates
// and updates. The slug, supplier and rating are managed by the store.
type ProductParams struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Stock       int
	CategoryID  int64
}

// ProductStore provides access to the product catalog.
type ProductStore struct {
	repo *repository.Repository[models.Product]
}

// NewProductStore creates a ProductStore on the given database handle.
func NewProductStore(db *storage.DB) *ProductStore {
	return &ProductStore{repo: repository.New[models.Product](db.Pool())}
}

// Available returns every active product with stock on hand.
func (s *ProductStore) Available(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx,
		repository.Gt("stock", 0),
		repository.Eq("is_active", true))
}

// AvailableInCategories returns active, in-stock products belonging to any
// of the given categories.
func (s *ProductStore) AvailableInCategories(ctx context.Context, categoryIDs []int64) ([]models.Product, error) {
	ids := make([]any, len(categoryIDs))
	for i, id := range categoryIDs {
		ids[i] = id
	}
	return s.repo.FindAll(ctx,
		repository.In("category_id", ids...),
		repository.Gt("stock", 0),
		repository.Eq("is_active", true))
}

// ByID returns the active product with the given id, or nil when absent.
func (s *ProductStore) ByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.FindByID(ctx, id, repository.Eq("is_active", true))
}

// BySlug returns the product with the given slug, or nil when absent.
func (s *ProductStore) BySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	return s.repo.FindOneOrNone(ctx, repository.Eq("slug", productSlug))
}

// Create inserts an active product owned by the given supplier and returns
// its id. The slug is derived from the name; the rating starts at zero.
func (s *ProductStore) Create(ctx context.Context, p ProductParams, supplierID int64) (int64, error) {
	return s.repo.Add(ctx, repository.Values{
		"name":        p.Name,
		"slug":        slug.Make(p.Name),
		"description": p.Description,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"stock":       p.Stock,
		"category_id": p.CategoryID,
		"supplier_id": supplierID,
		"rating":      0.0,
		"is_active":   true,
	})
}

// Update replaces the caller-editable fields of the product, regenerating
// the slug from the new name. Ownership and rating are left untouched.
func (s *ProductStore) Update(ctx context.Context, id int64, p ProductParams) error {
	return s.repo.Update(ctx,
		[]repository.Condition{repository.Eq("id", id)},
		repository.Values{
			"name":        p.Name,
			"slug":        slug.Make(p.Name),
			"description": p.Description,
			"price":       p.Price,
			"image_url":   p.ImageURL,
			"stock":       p.Stock,
			"category_id": p.CategoryID,
		})
}

// Deactivate soft-deletes the product.
func (s *ProductStore) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Update(ctx,
		[]repository.Condition{repository.Eq("id", id)},
		repository.Values{"is_active": false})
}
