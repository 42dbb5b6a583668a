package partner

import (
	"context"
	"testing"

	"github.com/pimify/backend/internal/domain/catalog"
	"github.com/pimify/backend/internal/domain/partner"
	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSupplierService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		resp, err := NewSupplierService(repo, nil).Create(ctx, SupplierRequest{
			Name: "Acme", Email: "Sales@Acme.example", Phone: "555", Address: "1 Road",
		})
		require.NoError(t, err)
		assert.Equal(t, "sales@acme.example", resp.Email)
		repo.AssertExpectations(t)
	})

	t.Run("invalid email", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		_, err := NewSupplierService(repo, nil).Create(ctx, SupplierRequest{Name: "Acme", Email: "nope"})
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "email")
	})
}

func TestSupplierService_List_PastTheEnd(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSupplierRepository)
	repo.On("List", ctx, mock.Anything).Return([]partner.Supplier{}, int64(3), nil)

	page, err := NewSupplierService(repo, nil).List(ctx, 2, "")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.Count)
}

func TestWarehouseService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates to the stock-aware deleter", func(t *testing.T) {
		repo := new(MockWarehouseRepository)
		deleter := new(MockWarehouseDeleter)
		deleter.On("DeleteWarehouse", ctx, "w1").Return(nil)

		require.NoError(t, NewWarehouseService(repo, deleter, nil).Delete(ctx, "w1"))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("falls back to the repository", func(t *testing.T) {
		repo := new(MockWarehouseRepository)
		repo.On("Delete", ctx, "w1").Return(shared.ErrNotFound)

		assert.ErrorIs(t, NewWarehouseService(repo, nil, nil).Delete(ctx, "w1"), shared.ErrNotFound)
	})
}

func TestProductSupplierService(t *testing.T) {
	ctx := context.Background()
	product, err := catalog.NewProduct("Widget", "W-1", valueobject.MustMoney("3", valueobject.USD))
	require.NoError(t, err)
	supplier, err := partner.NewSupplier(partner.SupplierInput{Name: "Acme", Email: "a@acme.example"})
	require.NoError(t, err)

	t.Run("create embeds product and supplier", func(t *testing.T) {
		links := new(MockProductSupplierRepository)
		products := new(MockProductRepository)
		suppliers := new(MockSupplierRepository)

		products.On("FindByID", ctx, product.ID).Return(product, nil)
		suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		var saved *partner.ProductSupplier
		links.On("Save", ctx, mock.AnythingOfType("*partner.ProductSupplier")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*partner.ProductSupplier) }).
			Return(nil)
		links.On("FindByID", ctx, mock.Anything).Return(func(_ context.Context, _ string) *partner.ProductSupplier {
			return saved
		}, nil)
		products.On("FindByIDs", ctx, []string{product.ID}).Return([]catalog.Product{*product}, nil)
		suppliers.On("FindByIDs", ctx, []string{supplier.ID}).Return([]partner.Supplier{*supplier}, nil)

		svc := NewProductSupplierService(links, products, suppliers, nil)
		resp, err := svc.Create(ctx, CreateProductSupplierRequest{
			ProductID: product.ID, SupplierID: supplier.ID, CostPrice: decimal.RequireFromString("2.345"), LeadTime: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, "W-1", resp.Product.SKU)
		assert.Equal(t, "Acme", resp.Supplier.Name)
		assert.True(t, resp.CostPrice.Equal(decimal.RequireFromString("2.35")))
		assert.Equal(t, 4, resp.LeadTime)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		links := new(MockProductSupplierRepository)
		products := new(MockProductRepository)
		suppliers := new(MockSupplierRepository)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)
		links.On("Save", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		_, err := NewProductSupplierService(links, products, suppliers, nil).Create(ctx, CreateProductSupplierRequest{
			ProductID: product.ID, SupplierID: supplier.ID,
		})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("negative lead time", func(t *testing.T) {
		links := new(MockProductSupplierRepository)
		products := new(MockProductRepository)
		suppliers := new(MockSupplierRepository)
		products.On("FindByID", ctx, product.ID).Return(product, nil)
		suppliers.On("FindByID", ctx, supplier.ID).Return(supplier, nil)

		_, err := NewProductSupplierService(links, products, suppliers, nil).Create(ctx, CreateProductSupplierRequest{
			ProductID: product.ID, SupplierID: supplier.ID, LeadTime: -1,
		})
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "lead_time")
	})
}
