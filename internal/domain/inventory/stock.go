package inventory

import (
	"github.com/pimify/backend/internal/domain/shared"
)

// Stock is the quantity of one product held at one warehouse.
// Every write to a stock row re-aggregates the owning product's
// stock_quantity.
type Stock struct {
	ID          string
	ProductID   string
	WarehouseID string
	Quantity    int
}

// NewStock creates a stock row
func NewStock(productID, warehouseID string, quantity int) (*Stock, error) {
	s := &Stock{ID: shared.NewID()}
	if err := s.Assign(productID, warehouseID, quantity); err != nil {
		return nil, err
	}
	return s, nil
}

// Assign sets every field of the row
func (s *Stock) Assign(productID, warehouseID string, quantity int) error {
	verr := &shared.ValidationError{}
	if productID == "" {
		verr.Add("product", "Product is required")
	}
	if warehouseID == "" {
		verr.Add("warehouse", "Warehouse is required")
	}
	if quantity < 0 {
		verr.Add("quantity", "Quantity cannot be negative")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	s.ProductID = productID
	s.WarehouseID = warehouseID
	s.Quantity = quantity
	return nil
}
