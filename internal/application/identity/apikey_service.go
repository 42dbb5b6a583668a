// Package identity provides API key, organization and staff account use cases.
package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// APIKeyService manages API keys and authenticates public API callers
type APIKeyService struct {
	repo   identity.APIKeyRepository
	issuer *identity.KeyIssuer
	logger *zap.Logger
}

// NewAPIKeyService creates a new APIKeyService
func NewAPIKeyService(repo identity.APIKeyRepository, issuer *identity.KeyIssuer, logger *zap.Logger) *APIKeyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if issuer == nil {
		issuer = identity.NewKeyIssuer("", 0)
	}
	return &APIKeyService{repo: repo, issuer: issuer, logger: logger}
}

// Create validates the name, issues a unique token and stores the key.
// The response is the only place the full token is returned.
func (s *APIKeyService) Create(ctx context.Context, req CreateAPIKeyRequest) (*CreatedAPIKeyResponse, error) {
	if err := identity.ValidateAPIKeyName(req.Name); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(ctx, s.repo.ExistsByKey)
	if err != nil {
		if errors.Is(err, identity.ErrAPIKeyExhausted) {
			s.logger.Error("API key generation exhausted", zap.Int("attempts", s.issuer.MaxAttempts))
		}
		return nil, err
	}

	key, err := identity.NewAPIKey(req.Name, token)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info("API key created", zap.Uint("api_key_id", key.ID), zap.String("name", key.Name))

	response := CreatedAPIKeyResponse{APIKeyResponse: ToAPIKeyResponse(key)}
	response.APIKey = key.Key
	return &response, nil
}

// Authenticate resolves a token to an active key.
// Unknown and inactive tokens return shared.ErrUnauthorized.
func (s *APIKeyService) Authenticate(ctx context.Context, token string) (*identity.APIKey, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, shared.ErrUnauthorized
	}
	key, err := s.repo.FindByKey(ctx, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !key.IsActive {
		return nil, shared.ErrUnauthorized
	}
	return key, nil
}

// GetByID returns a key with its token masked
func (s *APIKeyService) GetByID(ctx context.Context, id uint) (*APIKeyResponse, error) {
	key, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAPIKeyResponse(key)
	return &response, nil
}

// List returns a page of keys, newest first
func (s *APIKeyService) List(ctx context.Context, f APIKeyListFilter) (*shared.Paginated[APIKeyResponse], error) {
	filter := shared.PageFilter(f.Page)
	filter.Search = strings.TrimSpace(f.Search)
	if f.IsActive != nil {
		filter.Filters["is_active"] = *f.IsActive
	}

	keys, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.PageOf(ToAPIKeyResponses(keys), total, filter), nil
}

// Activate enables a key
func (s *APIKeyService) Activate(ctx context.Context, id uint) (*APIKeyResponse, error) {
	return s.setActive(ctx, id, true)
}

// Deactivate disables a key without deleting it
func (s *APIKeyService) Deactivate(ctx context.Context, id uint) (*APIKeyResponse, error) {
	return s.setActive(ctx, id, false)
}

func (s *APIKeyService) setActive(ctx context.Context, id uint, active bool) (*APIKeyResponse, error) {
	key, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if active {
		key.Activate()
	} else {
		key.Deactivate()
	}
	if err := s.repo.Save(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info("API key updated", zap.Uint("api_key_id", id), zap.Bool("is_active", active))
	response := ToAPIKeyResponse(key)
	return &response, nil
}

// Delete removes a key; an organization pointing at it is detached
func (s *APIKeyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("API key deleted", zap.Uint("api_key_id", id))
	return nil
}
