package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/pimify/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

var usernamePattern = regexp.MustCompile(`^[a-z0-9_.@+-]{3,150}$`)

// StaffUser is a back-office account. Only active staff may use the
// private API and the admin back-office.
type StaffUser struct {
	shared.BaseEntity
	Username     string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	LastLoginAt  *time.Time
}

// NewStaffUser creates an active staff account
func NewStaffUser(username, password string, superuser bool) (*StaffUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	verr := &shared.ValidationError{}
	if !usernamePattern.MatchString(username) {
		verr.Add("username", "Username must be 3-150 characters of letters, digits and @.+-_")
	}
	if len(password) < 8 {
		verr.Add("password", "Password must be at least 8 characters")
	} else if len(password) > 72 {
		verr.Add("password", "Password cannot exceed 72 bytes")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &StaffUser{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  superuser,
	}, nil
}

// VerifyPassword verifies if the provided password matches
func (u *StaffUser) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword replaces the password hash
func (u *StaffUser) SetPassword(password string) error {
	if len(password) < 8 || len(password) > 72 {
		return shared.NewValidationError("password", "Password must be 8-72 characters")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// CanAccessBackOffice reports whether the account may use staff-only surfaces
func (u *StaffUser) CanAccessBackOffice() bool {
	return u.IsActive && (u.IsStaff || u.IsSuperuser)
}

// RecordLogin stamps the last login time
func (u *StaffUser) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
