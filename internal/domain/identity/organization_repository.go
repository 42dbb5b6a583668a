package identity

import "context"

// OrganizationRepository persists the singleton organization
type OrganizationRepository interface {
	// Get returns the organization or shared.ErrNotFound
	Get(ctx context.Context) (*Organization, error)
	// Upsert writes the organization under OrganizationID
	Upsert(ctx context.Context, org *Organization) error
}
