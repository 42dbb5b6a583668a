package identity

import "context"

// StaffUserRepository defines the interface for staff account persistence
type StaffUserRepository interface {
	FindByID(ctx context.Context, id string) (*StaffUser, error)
	FindByUsername(ctx context.Context, username string) (*StaffUser, error)
	Save(ctx context.Context, user *StaffUser) error
}
