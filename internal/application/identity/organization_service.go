package identity

import (
	"context"
	"errors"
	"time"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrOrganizationNotFound is returned while the organization has not been set up
var ErrOrganizationNotFound = shared.NewDomainError("NOT_FOUND", "Organization details not found")

// OrganizationService reads and writes the singleton organization
type OrganizationService struct {
	repo       identity.OrganizationRepository
	apiKeyRepo identity.APIKeyRepository
	logger     *zap.Logger
}

// NewOrganizationService creates a new OrganizationService
func NewOrganizationService(repo identity.OrganizationRepository, apiKeyRepo identity.APIKeyRepository, logger *zap.Logger) *OrganizationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrganizationService{repo: repo, apiKeyRepo: apiKeyRepo, logger: logger}
}

// Get returns the organization or ErrOrganizationNotFound
func (s *OrganizationService) Get(ctx context.Context) (*identity.Organization, error) {
	org, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return org, nil
}

// Upsert creates the organization or replaces its details. There is
// never more than one row.
func (s *OrganizationService) Upsert(ctx context.Context, req OrganizationRequest) (*OrganizationResponse, error) {
	in := identity.OrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Website:     req.Website,
		APIKeyID:    req.APIKeyID,
	}
	if req.FoundedDate != "" {
		founded, err := time.Parse(dateLayout, req.FoundedDate)
		if err != nil {
			return nil, shared.NewValidationError("founded_date", "Enter a valid date")
		}
		in.FoundedDate = &founded
	}
	if req.APIKeyID != nil {
		if _, err := s.apiKeyRepo.FindByID(ctx, *req.APIKeyID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewValidationError("api_key_id", "API key does not exist")
			}
			return nil, err
		}
	}

	org, err := s.repo.Get(ctx)
	switch {
	case err == nil:
		err = org.Update(in)
	case errors.Is(err, shared.ErrNotFound):
		org, err = identity.NewOrganization(in)
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info("Organization saved", zap.String("name", org.Name))
	response := ToOrganizationResponse(org)
	return &response, nil
}
