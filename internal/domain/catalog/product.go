package catalog

import (
	"strings"

	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const (
	maxProductNameLength = 100
	maxSKULength         = 150
	// decimal(14,2) leaves 12 integer digits
	maxPriceDigits = 12
)

// Product represents a product in the catalog.
// StockQuantity is derived from the product's stock rows and is only
// written by the stock aggregator.
type Product struct {
	shared.BaseEntity
	Name          string
	SKU           string
	Description   string
	Price         valueobject.Money
	StockQuantity int
	IsActive      bool
	CategoryIDs   []string
}

// NewProduct creates a new inactive product
func NewProduct(name, sku string, price valueobject.Money) (*Product, error) {
	verr := &shared.ValidationError{}
	validateProductName(verr, name)
	validateSKU(verr, sku)
	validatePrice(verr, price)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		SKU:         strings.TrimSpace(sku),
		Price:       price.Round(valueobject.MoneyPlaces),
		CategoryIDs: make([]string, 0),
	}, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, sku, description string) error {
	verr := &shared.ValidationError{}
	validateProductName(verr, name)
	validateSKU(verr, sku)
	if err := verr.OrNil(); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.SKU = strings.TrimSpace(sku)
	p.Description = description
	p.Touch()
	return nil
}

// SetPrice replaces the product price
func (p *Product) SetPrice(price valueobject.Money) error {
	verr := &shared.ValidationError{}
	validatePrice(verr, price)
	if err := verr.OrNil(); err != nil {
		return err
	}
	p.Price = price.Round(valueobject.MoneyPlaces)
	p.Touch()
	return nil
}

// Activate marks the product as visible
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate hides the product
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// SetCategories replaces the category links, dropping duplicates
func (p *Product) SetCategories(ids []string) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	p.CategoryIDs = out
	p.Touch()
}

// StockValue returns price multiplied by the aggregated stock quantity
func (p *Product) StockValue() valueobject.Money {
	return p.Price.MultiplyBy(decimal.NewFromInt(int64(p.StockQuantity)))
}

func validateProductName(verr *shared.ValidationError, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		verr.Add("name", "Name is required")
	} else if len(name) > maxProductNameLength {
		verr.Add("name", "Name cannot exceed 100 characters")
	}
}

func validateSKU(verr *shared.ValidationError, sku string) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		verr.Add("sku", "SKU is required")
	} else if len(sku) > maxSKULength {
		verr.Add("sku", "SKU cannot exceed 150 characters")
	}
}

func validatePrice(verr *shared.ValidationError, price valueobject.Money) {
	if price.Currency() == "" {
		verr.Add("price_currency", "Currency is required")
	}
	if price.IsNegative() {
		verr.Add("price", "Price cannot be negative")
		return
	}
	intDigits := len(price.Amount().Truncate(0).Abs().String())
	if intDigits > maxPriceDigits {
		verr.Add("price", "Price has too many digits")
	}
}
