package partner

import (
	"strings"

	"github.com/pimify/backend/internal/domain/shared"
)

// Warehouse is a physical location that holds stock
type Warehouse struct {
	shared.BaseEntity
	Name    string
	Address string
}

// NewWarehouse creates a warehouse
func NewWarehouse(name, address string) (*Warehouse, error) {
	w := &Warehouse{BaseEntity: shared.NewBaseEntity()}
	if err := w.Update(name, address); err != nil {
		return nil, err
	}
	return w, nil
}

// Update changes name and address
func (w *Warehouse) Update(name, address string) error {
	name = strings.TrimSpace(name)
	verr := &shared.ValidationError{}
	if name == "" {
		verr.Add("name", "Name is required")
	} else if len(name) > 100 {
		verr.Add("name", "Name cannot exceed 100 characters")
	}
	if strings.TrimSpace(address) == "" {
		verr.Add("address", "Address is required")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	w.Name = name
	w.Address = address
	w.Touch()
	return nil
}
