package identity

import (
	"strings"
	"time"

	"github.com/pimify/backend/internal/domain/shared"
)

// OrganizationID is the only identifier an organization row may have.
// Storage enforces it, so the organization is a singleton at the data level.
const OrganizationID uint = 1

// Organization holds the deployment's organization metadata
type Organization struct {
	ID          uint
	Name        string
	Description string
	FoundedDate *time.Time
	Email       string
	PhoneNumber string
	Website     string
	APIKeyID    *uint
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrganizationInput carries the editable organization fields
type OrganizationInput struct {
	Name        string
	Description string
	FoundedDate *time.Time
	Email       string
	PhoneNumber string
	Website     string
	APIKeyID    *uint
}

// NewOrganization creates the singleton organization
func NewOrganization(in OrganizationInput) (*Organization, error) {
	now := time.Now()
	o := &Organization{ID: OrganizationID, CreatedAt: now}
	if err := o.Update(in); err != nil {
		return nil, err
	}
	return o, nil
}

// Update replaces every editable field
func (o *Organization) Update(in OrganizationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)

	verr := &shared.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "Name is required")
	} else if len(in.Name) > 100 {
		verr.Add("name", "Name cannot exceed 100 characters")
	}
	if in.Email != "" && !shared.IsEmail(in.Email) {
		verr.Add("email", "Enter a valid email address")
	}
	if len(in.PhoneNumber) > 20 {
		verr.Add("phone_number", "Phone number cannot exceed 20 characters")
	}
	if in.Website != "" && !shared.IsURL(in.Website) {
		verr.Add("website", "Enter a valid URL")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	o.ID = OrganizationID
	o.Name = in.Name
	o.Description = in.Description
	o.FoundedDate = in.FoundedDate
	o.Email = in.Email
	o.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	o.Website = in.Website
	o.APIKeyID = in.APIKeyID
	o.UpdatedAt = time.Now()
	return nil
}
