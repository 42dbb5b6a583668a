package identity

import (
	"strings"
	"time"

	"github.com/pimify/backend/internal/domain/shared"
)

// APIKey grants read access to the public API.
// Key is generated once at creation and never changes.
type APIKey struct {
	ID        uint
	Key       string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateAPIKeyName checks the display name before any key is generated
func ValidateAPIKeyName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("name", "Name is required")
	}
	if len(name) > 100 {
		return shared.NewValidationError("name", "Name cannot exceed 100 characters")
	}
	return nil
}

// NewAPIKey builds an active key record around an already issued token
func NewAPIKey(name, key string) (*APIKey, error) {
	if err := ValidateAPIKeyName(name); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, shared.NewValidationError("api_key", "Key is required")
	}
	now := time.Now()
	return &APIKey{
		Key:       key,
		Name:      strings.TrimSpace(name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Rename changes the display name
func (k *APIKey) Rename(name string) error {
	if err := ValidateAPIKeyName(name); err != nil {
		return err
	}
	k.Name = strings.TrimSpace(name)
	k.UpdatedAt = time.Now()
	return nil
}

// Activate enables the key
func (k *APIKey) Activate() {
	k.IsActive = true
	k.UpdatedAt = time.Now()
}

// Deactivate disables the key without deleting it
func (k *APIKey) Deactivate() {
	k.IsActive = false
	k.UpdatedAt = time.Now()
}

// Masked returns the key with everything after its first 12 characters hidden
func (k *APIKey) Masked() string {
	if len(k.Key) <= 12 {
		return k.Key
	}
	return k.Key[:12] + "..."
}
