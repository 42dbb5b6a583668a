package partner

import (
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// SupplierRequest creates or replaces a supplier
type SupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=20"`
	Address string `json:"address"`
}

// SupplierListItem is the compact supplier shape
type SupplierListItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SupplierResponse is the detailed supplier shape
type SupplierResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// WarehouseRequest creates or replaces a warehouse
type WarehouseRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"required"`
}

// WarehouseListItem is the compact warehouse shape
type WarehouseListItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WarehouseResponse is the detailed warehouse shape
type WarehouseResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CreateProductSupplierRequest links a product to a supplier
type CreateProductSupplierRequest struct {
	ProductID  string          `json:"product_id" binding:"required"`
	SupplierID string          `json:"supplier_id" binding:"required"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	LeadTime   int             `json:"lead_time" binding:"min=0"`
}

// UpdateProductSupplierRequest changes a link's terms
type UpdateProductSupplierRequest struct {
	CostPrice *decimal.Decimal `json:"cost_price"`
	LeadTime  *int             `json:"lead_time" binding:"omitempty,min=0"`
}

// ProductSupplierResponse embeds the linked product and supplier
type ProductSupplierResponse struct {
	ID        string                     `json:"id"`
	Product   catalogapp.ProductListItem `json:"product"`
	Supplier  SupplierResponse           `json:"supplier"`
	CostPrice decimal.Decimal            `json:"cost_price"`
	LeadTime  int                        `json:"lead_time"`
}

// ToSupplierResponse converts a domain supplier
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, Address: s.Address}
}

// ToSupplierListItem converts a domain supplier to its list shape
func ToSupplierListItem(s partner.Supplier) SupplierListItem {
	return SupplierListItem{ID: s.ID, Name: s.Name, Email: s.Email}
}

// ToWarehouseResponse converts a domain warehouse
func ToWarehouseResponse(w *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Name: w.Name, Address: w.Address}
}

// ToWarehouseListItem converts a domain warehouse to its list shape
func ToWarehouseListItem(w partner.Warehouse) WarehouseListItem {
	return WarehouseListItem{ID: w.ID, Name: w.Name}
}

func (r SupplierRequest) input() partner.SupplierInput {
	return partner.SupplierInput{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}
