package identity

import (
	"context"

	"github.com/pimify/backend/internal/domain/shared"
)

// APIKeyRepository defines the interface for API key persistence
type APIKeyRepository interface {
	FindByID(ctx context.Context, id uint) (*APIKey, error)
	// FindByKey looks up a key by its token, active or not
	FindByKey(ctx context.Context, key string) (*APIKey, error)
	ExistsByKey(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, filter shared.Filter) ([]APIKey, int64, error)
	Save(ctx context.Context, key *APIKey) error
	Delete(ctx context.Context, id uint) error
}
