package partner

import (
	"context"

	catalogapp "github.com/pimify/backend/internal/application/catalog"
	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductSupplierService manages product sourcing links
type ProductSupplierService struct {
	linkRepo     partner.ProductSupplierRepository
	productRepo  catalog.ProductRepository
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewProductSupplierService creates a new ProductSupplierService
func NewProductSupplierService(
	linkRepo partner.ProductSupplierRepository,
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	logger *zap.Logger,
) *ProductSupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductSupplierService{
		linkRepo:     linkRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// GetByID returns a link with its product and supplier
func (s *ProductSupplierService) GetByID(ctx context.Context, id string) (*ProductSupplierResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, []partner.ProductSupplier{*link})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// List returns a page of links, optionally for one product or supplier
func (s *ProductSupplierService) List(ctx context.Context, page int, productID, supplierID string) (*shared.Paginated[ProductSupplierResponse], error) {
	filter := shared.PageFilter(page)
	filter.OrderBy = "id"
	filter.OrderDir = "asc"
	if productID != "" {
		filter.Filters["product_id"] = productID
	}
	if supplierID != "" {
		filter.Filters["supplier_id"] = supplierID
	}

	links, total, err := s.linkRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	details, err := s.details(ctx, links)
	if err != nil {
		return nil, err
	}
	return shared.PageOf(details, total, filter), nil
}

// Create links a product to a supplier. A pair may be linked only once.
func (s *ProductSupplierService) Create(ctx context.Context, req CreateProductSupplierRequest) (*ProductSupplierResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}
	link, err := partner.NewProductSupplier(req.ProductID, req.SupplierID, req.CostPrice, req.LeadTime)
	if err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	s.logger.Info("product supplier linked",
		zap.String("product_id", link.ProductID),
		zap.String("supplier_id", link.SupplierID))
	return s.GetByID(ctx, link.ID)
}

// Update changes the cost price or lead time of a link
func (s *ProductSupplierService) Update(ctx context.Context, id string, req UpdateProductSupplierRequest) (*ProductSupplierResponse, error) {
	link, err := s.linkRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cost, lead := link.CostPrice, link.LeadTime
	if req.CostPrice != nil {
		cost = *req.CostPrice
	}
	if req.LeadTime != nil {
		lead = *req.LeadTime
	}
	if err := link.SetTerms(cost, lead); err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, link.ID)
}

// Delete removes a link
func (s *ProductSupplierService) Delete(ctx context.Context, id string) error {
	return s.linkRepo.Delete(ctx, id)
}

// details batch-loads the products and suppliers of the links
func (s *ProductSupplierService) details(ctx context.Context, links []partner.ProductSupplier) ([]ProductSupplierResponse, error) {
	productIDs := make([]string, 0, len(links))
	supplierIDs := make([]string, 0, len(links))
	for _, l := range links {
		productIDs = append(productIDs, l.ProductID)
		supplierIDs = append(supplierIDs, l.SupplierID)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.supplierRepo.FindByIDs(ctx, supplierIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[string]*catalog.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	supplierByID := make(map[string]*partner.Supplier, len(suppliers))
	for i := range suppliers {
		supplierByID[suppliers[i].ID] = &suppliers[i]
	}

	out := make([]ProductSupplierResponse, 0, len(links))
	for _, l := range links {
		p, ok := productByID[l.ProductID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		sup, ok := supplierByID[l.SupplierID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		out = append(out, ProductSupplierResponse{
			ID:        l.ID,
			Product:   catalogapp.ToProductListItem(p),
			Supplier:  ToSupplierResponse(sup),
			CostPrice: l.CostPrice,
			LeadTime:  l.LeadTime,
		})
	}
	return out, nil
}
