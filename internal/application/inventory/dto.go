package inventory

import (
	catalogapp "github.com/pimify/backend/internal/application/catalog"
	partnerapp "github.com/pimify/backend/internal/application/partner"
)

// CreateStockRequest places a quantity of a product in a warehouse
type CreateStockRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"min=0"`
}

// UpdateStockRequest changes any field of a stock row
type UpdateStockRequest struct {
	ProductID   *string `json:"product_id"`
	WarehouseID *string `json:"warehouse_id"`
	Quantity    *int    `json:"quantity" binding:"omitempty,min=0"`
}

// StockListFilter narrows stock listings
type StockListFilter struct {
	Page        int
	ProductID   string
	WarehouseID string
}

// StockDetailResponse embeds the product and the warehouse of a stock row
type StockDetailResponse struct {
	ID        string                       `json:"id"`
	Product   catalogapp.ProductListItem   `json:"product"`
	Quantity  int                          `json:"quantity"`
	Warehouse partnerapp.WarehouseResponse `json:"warehouse"`
}
