package identity

import (
	"time"

	"github.com/pimify/backend/internal/domain/identity"
)

// dateLayout is the wire format of organization dates
const dateLayout = "2006-01-02"

// CreateAPIKeyRequest names a new API key; the token itself is generated
type CreateAPIKeyRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// APIKeyListFilter narrows API key listings
type APIKeyListFilter struct {
	Page     int
	Search   string
	IsActive *bool
}

// APIKeyResponse shows an API key with its token masked
type APIKeyResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatedAPIKeyResponse is returned once, on creation, with the full token
type CreatedAPIKeyResponse struct {
	APIKeyResponse
}

// OrganizationRequest replaces the organization details
type OrganizationRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	FoundedDate string `json:"founded_date" binding:"omitempty,datetime=2006-01-02"`
	Email       string `json:"email" binding:"omitempty,email"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Website     string `json:"website" binding:"omitempty,url"`
	APIKeyID    *uint  `json:"api_key_id"`
}

// OrganizationDetail is the public organization shape
type OrganizationDetail struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	FoundedDate *string `json:"founded_date"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Website     *string `json:"website"`
}

// OrganizationResponse is the back-office organization shape
type OrganizationResponse struct {
	OrganizationDetail
	APIKeyID  *uint     `json:"api_key_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest carries staff credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse describes a staff account
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// ToAPIKeyResponse converts a key, masking its token
func ToAPIKeyResponse(k *identity.APIKey) APIKeyResponse {
	return APIKeyResponse{
		ID:        k.ID,
		Name:      k.Name,
		APIKey:    k.Masked(),
		IsActive:  k.IsActive,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

// ToAPIKeyResponses converts a slice of keys
func ToAPIKeyResponses(keys []identity.APIKey) []APIKeyResponse {
	responses := make([]APIKeyResponse, len(keys))
	for i := range keys {
		responses[i] = ToAPIKeyResponse(&keys[i])
	}
	return responses
}

// ToOrganizationDetail converts the organization for the public API
func ToOrganizationDetail(o *identity.Organization) OrganizationDetail {
	d := OrganizationDetail{
		ID:          o.ID,
		Name:        o.Name,
		Description: optional(o.Description),
		Email:       optional(o.Email),
		PhoneNumber: optional(o.PhoneNumber),
		Website:     optional(o.Website),
	}
	if o.FoundedDate != nil {
		s := o.FoundedDate.Format(dateLayout)
		d.FoundedDate = &s
	}
	return d
}

// ToOrganizationResponse converts the organization for the back-office
func ToOrganizationResponse(o *identity.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationDetail: ToOrganizationDetail(o),
		APIKeyID:           o.APIKeyID,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

// ToUserResponse converts a staff account
func ToUserResponse(u *identity.StaffUser) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		LastLoginAt: u.LastLoginAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
