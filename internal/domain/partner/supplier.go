package partner

import (
	"strings"

	"github.com/pimify/backend/internal/domain/shared"
)

// Supplier is a vendor that provides products
type Supplier struct {
	shared.BaseEntity
	Name    string
	Email   string
	Phone   string
	Address string
}

// SupplierInput carries the editable supplier fields
type SupplierInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewSupplier creates a supplier
func NewSupplier(in SupplierInput) (*Supplier, error) {
	s := &Supplier{BaseEntity: shared.NewBaseEntity()}
	if err := s.Update(in); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the supplier's contact details
func (s *Supplier) Update(in SupplierInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	verr := &shared.ValidationError{}
	if in.Name == "" {
		verr.Add("name", "Name is required")
	} else if len(in.Name) > 100 {
		verr.Add("name", "Name cannot exceed 100 characters")
	}
	if !shared.IsEmail(in.Email) {
		verr.Add("email", "Enter a valid email address")
	}
	if len(in.Phone) > 20 {
		verr.Add("phone", "Phone cannot exceed 20 characters")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	s.Name = in.Name
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.Touch()
	return nil
}
