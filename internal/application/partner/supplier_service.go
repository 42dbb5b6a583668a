package partner

import (
	"context"

	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{supplierRepo: supplierRepo, logger: logger}
}

// GetByID returns a supplier
func (s *SupplierService) GetByID(ctx context.Context, id string) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List returns a page of suppliers ordered by name
func (s *SupplierService) List(ctx context.Context, page int, search string) (*shared.Paginated[SupplierListItem], error) {
	filter := shared.PageFilter(page)
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.Search = search

	suppliers, total, err := s.supplierRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]SupplierListItem, len(suppliers))
	for i, sup := range suppliers {
		items[i] = ToSupplierListItem(sup)
	}
	return shared.PageOf(items, total, filter), nil
}

// Create creates a supplier
func (s *SupplierService) Create(ctx context.Context, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.input())
	if err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID))
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update replaces a supplier's details
func (s *SupplierService) Update(ctx context.Context, id string, req SupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.input()); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier and its product links
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("supplier deleted", zap.String("supplier_id", id))
	return nil
}
