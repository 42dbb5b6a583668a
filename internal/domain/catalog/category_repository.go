package catalog

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id string) (*Category, error)
	FindBySlug(ctx context.Context, slug string) (*Category, error)
	// FindBySlugs returns the categories found; missing slugs are simply absent
	FindBySlugs(ctx context.Context, slugs []string) ([]Category, error)
	FindByIDs(ctx context.Context, ids []string) ([]Category, error)
	List(ctx context.Context, filter shared.Filter) ([]Category, int64, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id string) error
	ExistsBySlug(ctx context.Context, slug, excludeID string) (bool, error)
}
