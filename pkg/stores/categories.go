package stores

import (
	"context"

	"github.com/gosimple/slug"

	"github.com/NetSkoocKlim/storefront/pkg/models"
	"github.com/NetSkoocKlim/storefront/pkg/repository"
	"github.com/NetSkoocKlim/storefront/pkg/storage"
)

// CategoryStore provides access to the category tree.
type CategoryStore struct {
	repo *repository.Repository[models.Category]
}

// NewCategoryStore creates a CategoryStore on the given database handle.
func NewCategoryStore(db *storage.DB) *CategoryStore {
	return &CategoryStore{repo: repository.New[models.Category](db.Pool())}
}

// AllActive returns every active category.
func (s *CategoryStore) AllActive(ctx context.Context) ([]models.Category, error) {
	return s.repo.FindAll(ctx, repository.Eq("is_active", true))
}

// ByID returns the category with the given id, or nil when absent.
func (s *CategoryStore) ByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.FindByID(ctx, id)
}

// BySlug returns the category with the given slug, or nil when absent.
func (s *CategoryStore) BySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	return s.repo.FindOneOrNone(ctx, repository.Eq("slug", categorySlug))
}

// Subcategories returns the direct children of the given category.
func (s *CategoryStore) Subcategories(ctx context.Context, parentID int64) ([]models.Category, error) {
	return s.repo.FindAll(ctx, repository.Eq("parent_id", parentID))
}

// Create inserts an active category, deriving its slug from the name.
// A nil parentID makes it a root category.
func (s *CategoryStore) Create(ctx context.Context, name string, parentID *int64) (int64, error) {
	vals := repository.Values{
		"name":      name,
		"slug":      slug.Make(name),
		"is_active": true,
	}
	if parentID != nil {
		vals["parent_id"] = *parentID
	}
	return s.repo.Add(ctx, vals)
}

// Update renames the category, regenerating its slug, and moves it under
// the given parent (nil reparents to root).
func (s *CategoryStore) Update(ctx context.Context, id int64, name string, parentID *int64) error {
	vals := repository.Values{
		"name":      name,
		"slug":      slug.Make(name),
		"parent_id": nil,
	}
	if parentID != nil {
		vals["parent_id"] = *parentID
	}
	return s.repo.Update(ctx, []repository.Condition{repository.Eq("id", id)}, vals)
}

// Deactivate soft-deletes the category.
func (s *CategoryStore) Deactivate(ctx context.Context, id int64) error {
	return s.repo.Update(ctx,
		[]repository.Condition{repository.Eq("id", id)},
		repository.Values{"is_active": false})
}
