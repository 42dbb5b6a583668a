package inventory

import (
	"context"
	"sort"

	catalogapp "github.com/pimify/backend/internal/application/catalog"
	partnerapp "github.com/pimify/backend/internal/application/partner"
	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/inventory"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockService handles stock rows and keeps each product's
// stock_quantity equal to the sum of its rows. Every write runs in one
// transaction that locks the affected products first.
type StockService struct {
	scope         InventoryScope
	stockRepo     inventory.StockRepository
	productRepo   catalog.ProductRepository
	warehouseRepo partner.WarehouseRepository
	logger        *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	scope InventoryScope,
	stockRepo inventory.StockRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo partner.WarehouseRepository,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		scope:         scope,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		logger:        logger,
	}
}

// GetByID returns a stock row with its product and warehouse
func (s *StockService) GetByID(ctx context.Context, id string) (*StockDetailResponse, error) {
	stock, err := s.stockRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, []inventory.Stock{*stock})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// List returns a page of stock rows
func (s *StockService) List(ctx context.Context, filter StockListFilter) (*shared.Paginated[StockDetailResponse], error) {
	domainFilter := shared.PageFilter(filter.Page)
	if filter.ProductID != "" {
		domainFilter.Filters["product_id"] = filter.ProductID
	}
	if filter.WarehouseID != "" {
		domainFilter.Filters["warehouse_id"] = filter.WarehouseID
	}

	stocks, total, err := s.stockRepo.List(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, stocks)
	if err != nil {
		return nil, err
	}
	return shared.PageOf(details, total, domainFilter), nil
}

// Create adds a stock row and re-aggregates its product
func (s *StockService) Create(ctx context.Context, req CreateStockRequest) (*StockDetailResponse, error) {
	stock, err := inventory.NewStock(req.ProductID, req.WarehouseID, req.Quantity)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos InventoryRepositories) error {
		if err := lockProducts(ctx, repos, stock.ProductID); err != nil {
			return err
		}
		if _, err := repos.Warehouses().FindByID(ctx, stock.WarehouseID); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}
		return s.aggregate(ctx, repos, stock.ProductID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock created",
		zap.String("stock_id", stock.ID),
		zap.String("product_id", stock.ProductID),
		zap.Int("quantity", stock.Quantity))
	return s.GetByID(ctx, stock.ID)
}

// Update changes a stock row. Moving it to another product re-aggregates
// both products, locked in id order.
func (s *StockService) Update(ctx context.Context, id string, req UpdateStockRequest) (*StockDetailResponse, error) {
	err := s.scope.Execute(ctx, func(repos InventoryRepositories) error {
		stock, err := repos.Stocks().FindByID(ctx, id)
		if err != nil {
			return err
		}

		previousProduct := stock.ProductID
		productID, warehouseID, quantity := stock.ProductID, stock.WarehouseID, stock.Quantity
		if req.ProductID != nil {
			productID = *req.ProductID
		}
		if req.WarehouseID != nil {
			warehouseID = *req.WarehouseID
		}
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if err := stock.Assign(productID, warehouseID, quantity); err != nil {
			return err
		}

		if err := lockProducts(ctx, repos, previousProduct, productID); err != nil {
			return err
		}
		if _, err := repos.Warehouses().FindByID(ctx, warehouseID); err != nil {
			return err
		}
		if err := repos.Stocks().Save(ctx, stock); err != nil {
			return err
		}
		for _, pid := range uniqueSorted(previousProduct, productID) {
			if err := s.aggregate(ctx, repos, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock updated", zap.String("stock_id", id))
	return s.GetByID(ctx, id)
}

// Delete removes a stock row and lowers its product's total
func (s *StockService) Delete(ctx context.Context, id string) error {
	err := s.scope.Execute(ctx, func(repos InventoryRepositories) error {
		stock, err := repos.Stocks().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := lockProducts(ctx, repos, stock.ProductID); err != nil {
			return err
		}
		if err := repos.Stocks().Delete(ctx, id); err != nil {
			return err
		}
		return s.aggregate(ctx, repos, stock.ProductID)
	})
	if err != nil {
		return err
	}
	s.logger.Info("stock deleted", zap.String("stock_id", id))
	return nil
}

// DeleteWarehouse removes a warehouse with its stock rows and
// re-aggregates every product that had stock there
func (s *StockService) DeleteWarehouse(ctx context.Context, warehouseID string) error {
	var affected []string
	err := s.scope.Execute(ctx, func(repos InventoryRepositories) error {
		if _, err := repos.Warehouses().FindByID(ctx, warehouseID); err != nil {
			return err
		}
		stocks, err := repos.Stocks().ListByWarehouse(ctx, warehouseID)
		if err != nil {
			return err
		}
		ids := make([]string, len(stocks))
		for i, st := range stocks {
			ids[i] = st.ProductID
		}
		affected = uniqueSorted(ids...)
		if err := lockProducts(ctx, repos, affected...); err != nil {
			return err
		}
		for _, st := range stocks {
			if err := repos.Stocks().Delete(ctx, st.ID); err != nil {
				return err
			}
		}
		if err := repos.Warehouses().Delete(ctx, warehouseID); err != nil {
			return err
		}
		for _, pid := range affected {
			if err := s.aggregate(ctx, repos, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("warehouse stock released",
		zap.String("warehouse_id", warehouseID),
		zap.Int("products", len(affected)))
	return nil
}

// Recalculate re-aggregates one product from its stock rows
func (s *StockService) Recalculate(ctx context.Context, productID string) (int, error) {
	var total int
	err := s.scope.Execute(ctx, func(repos InventoryRepositories) error {
		if err := lockProducts(ctx, repos, productID); err != nil {
			return err
		}
		sum, err := repos.Stocks().SumQuantityByProduct(ctx, productID)
		if err != nil {
			return err
		}
		total = sum
		return repos.Products().SetStockQuantity(ctx, productID, sum)
	})
	return total, err
}

// aggregate writes SUM(quantity) of the product's rows to stock_quantity
func (s *StockService) aggregate(ctx context.Context, repos InventoryRepositories, productID string) error {
	total, err := repos.Stocks().SumQuantityByProduct(ctx, productID)
	if err != nil {
		return err
	}
	if err := repos.Products().SetStockQuantity(ctx, productID, total); err != nil {
		return err
	}
	s.logger.Debug("stock aggregated", zap.String("product_id", productID), zap.Int("stock_quantity", total))
	return nil
}

// lockProducts locks each distinct product in id order so concurrent
// writers touching the same products cannot deadlock
func lockProducts(ctx context.Context, repos InventoryRepositories, ids ...string) error {
	for _, id := range uniqueSorted(ids...) {
		if _, err := repos.Products().LockByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func uniqueSorted(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// details batch-loads products and warehouses for stock rows
func (s *StockService) details(ctx context.Context, stocks []inventory.Stock) ([]StockDetailResponse, error) {
	productIDs := make([]string, 0, len(stocks))
	warehouseIDs := make([]string, 0, len(stocks))
	for _, st := range stocks {
		productIDs = append(productIDs, st.ProductID)
		warehouseIDs = append(warehouseIDs, st.WarehouseID)
	}
	products, err := s.productRepo.FindByIDs(ctx, uniqueSorted(productIDs...))
	if err != nil {
		return nil, err
	}
	warehouses, err := s.warehouseRepo.FindByIDs(ctx, uniqueSorted(warehouseIDs...))
	if err != nil {
		return nil, err
	}

	productByID := make(map[string]*catalog.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	warehouseByID := make(map[string]*partner.Warehouse, len(warehouses))
	for i := range warehouses {
		warehouseByID[warehouses[i].ID] = &warehouses[i]
	}

	out := make([]StockDetailResponse, 0, len(stocks))
	for _, st := range stocks {
		p, ok := productByID[st.ProductID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		w, ok := warehouseByID[st.WarehouseID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		out = append(out, StockDetailResponse{
			ID:        st.ID,
			Product:   catalogapp.ToProductListItem(p),
			Quantity:  st.Quantity,
			Warehouse: partnerapp.ToWarehouseResponse(w),
		})
	}
	return out, nil
}

// Ensure StockService cascades warehouse deletes for the partner services
var _ partnerapp.WarehouseDeleter = (*StockService)(nil)
