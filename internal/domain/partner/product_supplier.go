package partner

import (
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductSupplier links a product to one of its suppliers with sourcing terms.
// A (product, supplier) pair appears at most once.
type ProductSupplier struct {
	ID         string
	ProductID  string
	SupplierID string
	CostPrice  decimal.Decimal
	LeadTime   int // days
}

// NewProductSupplier creates a sourcing link
func NewProductSupplier(productID, supplierID string, costPrice decimal.Decimal, leadTime int) (*ProductSupplier, error) {
	ps := &ProductSupplier{ID: shared.NewID(), ProductID: productID, SupplierID: supplierID}
	if err := ps.SetTerms(costPrice, leadTime); err != nil {
		return nil, err
	}
	verr := &shared.ValidationError{}
	if productID == "" {
		verr.Add("product", "Product is required")
	}
	if supplierID == "" {
		verr.Add("supplier", "Supplier is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return ps, nil
}

// SetTerms updates cost price and lead time
func (ps *ProductSupplier) SetTerms(costPrice decimal.Decimal, leadTime int) error {
	verr := &shared.ValidationError{}
	if costPrice.IsNegative() {
		verr.Add("cost_price", "Cost price cannot be negative")
	} else if len(costPrice.Truncate(0).String()) > 8 {
		verr.Add("cost_price", "Cost price has too many digits")
	}
	if leadTime < 0 {
		verr.Add("lead_time", "Lead time cannot be negative")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	ps.CostPrice = costPrice.Round(2)
	ps.LeadTime = leadTime
	return nil
}
