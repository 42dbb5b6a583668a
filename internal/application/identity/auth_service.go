package identity

import (
	"context"
	"errors"
	"time"

	"github.com/pimify/backend/internal/domain/identity"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for unknown users, wrong passwords and disabled accounts
var ErrInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

// AuthService authenticates staff accounts for the session-backed surfaces
type AuthService struct {
	userRepo identity.StaffUserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.StaffUserRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{userRepo: userRepo, logger: logger, now: time.Now}
}

// Login checks credentials and stamps the last login time.
// Non-staff accounts may log in; staff-only routes refuse them later.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*identity.StaffUser, error) {
	s.logger.Info("Login attempt", zap.String("username", req.Username))

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("User not found during login", zap.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin(s.now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the login itself succeeded
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID))
	return user, nil
}

// CurrentUser loads the account behind a session
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*identity.StaffUser, error) {
	if !shared.IsValidID(userID) {
		return nil, shared.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// CreateStaff creates a back-office account with a unique username
func (s *AuthService) CreateStaff(ctx context.Context, username, password string, superuser bool) (*identity.StaffUser, error) {
	user, err := identity.NewStaffUser(username, password, superuser)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil {
		return nil, shared.ErrAlreadyExists.Wrap(errors.New("username is taken"))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Staff user created",
		zap.String("username", user.Username),
		zap.Bool("superuser", superuser))
	return user, nil
}
