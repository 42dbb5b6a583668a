package identity

import (
	"context"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockAPIKeyRepository is a mock implementation of identity.APIKeyRepository
type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) FindByID(ctx context.Context, id uint) (*identity.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) FindByKey(ctx context.Context, key string) (*identity.APIKey, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) ExistsByKey(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAPIKeyRepository) List(ctx context.Context, filter shared.Filter) ([]identity.APIKey, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.APIKey), args.Get(1).(int64), args.Error(2)
}

func (m *MockAPIKeyRepository) Save(ctx context.Context, key *identity.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrganizationRepository is a mock implementation of identity.OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Get(ctx context.Context) (*identity.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Upsert(ctx context.Context, org *identity.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// MockStaffUserRepository is a mock implementation of identity.StaffUserRepository
type MockStaffUserRepository struct {
	mock.Mock
}

func (m *MockStaffUserRepository) FindByID(ctx context.Context, id string) (*identity.StaffUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) FindByUsername(ctx context.Context, username string) (*identity.StaffUser, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.StaffUser), args.Error(1)
}

func (m *MockStaffUserRepository) Save(ctx context.Context, user *identity.StaffUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
