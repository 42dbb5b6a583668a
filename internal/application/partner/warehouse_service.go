package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WarehouseDeleter removes a warehouse together with its stock rows and
// re-aggregates the affected products. The stock service implements it.
type WarehouseDeleter interface {
	DeleteWarehouse(ctx context.Context, warehouseID string) error
}

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
	deleter       WarehouseDeleter
	logger        *zap.Logger
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo partner.WarehouseRepository, deleter WarehouseDeleter, logger *zap.Logger) *WarehouseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WarehouseService{warehouseRepo: warehouseRepo, deleter: deleter, logger: logger}
}

// GetByID returns a warehouse
func (s *WarehouseService) GetByID(ctx context.Context, id string) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List returns a page of warehouses ordered by name
func (s *WarehouseService) List(ctx context.Context, page int, search string) (*shared.Paginated[WarehouseListItem], error) {
	filter := shared.PageFilter(page)
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.Search = search

	warehouses, total, err := s.warehouseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]WarehouseListItem, len(warehouses))
	for i, w := range warehouses {
		items[i] = ToWarehouseListItem(w)
	}
	return shared.PageOf(items, total, filter), nil
}

// Create creates a warehouse
func (s *WarehouseService) Create(ctx context.Context, req WarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := partner.NewWarehouse(req.Name, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	s.logger.Info("warehouse created", zap.String("warehouse_id", warehouse.ID))
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Update replaces a warehouse's details
func (s *WarehouseService) Update(ctx context.Context, id string, req WarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Update(req.Name, req.Address); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Delete removes a warehouse. Its stock goes with it and product totals drop.
func (s *WarehouseService) Delete(ctx context.Context, id string) error {
	var err error
	if s.deleter != nil {
		err = s.deleter.DeleteWarehouse(ctx, id)
	} else {
		err = s.warehouseRepo.Delete(ctx, id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("warehouse deleted", zap.String("warehouse_id", id))
	return nil
}
