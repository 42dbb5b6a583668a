package persistence

import (
	"strings"

	"github.com/pimify/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// paginate applies whitelisted ordering and the filter's page window.
// id is appended as a tie breaker so pages are stable.
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField, defaultDir string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := defaultDir
	if filter.OrderDir != "" {
		dir = ValidateSortOrder(filter.OrderDir)
	}
	return query.Order(field + " " + dir).Order("id " + dir).
		Offset(filter.Offset()).Limit(filter.Limit())
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern returns a lower-cased LIKE pattern matching search as a
// literal substring. Pair it with likeClause so the wildcards in search
// are escaped.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// likeClause is a case-insensitive substring match on column
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '!'"
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"sku":            true,
	"price":          true,
	"stock_quantity": true,
	"is_active":      true,
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"slug":       true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// StockSortFields contains allowed sort fields for stock rows
var StockSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"product_id":   true,
	"warehouse_id": true,
	"quantity":     true,
}

// ProductSupplierSortFields contains allowed sort fields for product-supplier links
var ProductSupplierSortFields = map[string]bool{
	"id":          true,
	"product_id":  true,
	"supplier_id": true,
	"cost_price":  true,
	"lead_time":   true,
}

// APIKeySortFields contains allowed sort fields for API keys
var APIKeySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"is_active":  true,
}
