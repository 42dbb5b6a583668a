package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/pimify/backend/internal/domain/shared"
	"github.com/pimify/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(" Desk Lamp ", "LAMP-001", valueobject.MustMoney("19.999", valueobject.USD))
		require.NoError(t, err)

		assert.Len(t, product.ID, shared.IDLength)
		assert.Equal(t, "Desk Lamp", product.Name)
		assert.Equal(t, "LAMP-001", product.SKU)
		assert.Equal(t, "20.00", product.Price.Amount().StringFixed(2))
		assert.Equal(t, 0, product.StockQuantity)
		assert.False(t, product.IsActive)
		assert.Empty(t, product.CategoryIDs)
	})

	t.Run("reports every failing field", func(t *testing.T) {
		_, err := NewProduct("", "", valueobject.MustMoney("-1", valueobject.USD))
		var verr *shared.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "name")
		assert.Contains(t, verr.Fields, "sku")
		assert.Contains(t, verr.Fields, "price")
	})

	t.Run("rejects prices beyond twelve integer digits", func(t *testing.T) {
		_, err := NewProduct("Big", "BIG", valueobject.MustMoney("1000000000000", valueobject.USD))
		require.Error(t, err)
	})

	t.Run("rejects long names", func(t *testing.T) {
		_, err := NewProduct(strings.Repeat("x", 101), "SKU", valueobject.Zero(valueobject.USD))
		require.Error(t, err)
	})
}

func TestProduct_SetCategories(t *testing.T) {
	product, err := NewProduct("Lamp", "LAMP", valueobject.Zero(valueobject.USD))
	require.NoError(t, err)

	product.SetCategories([]string{"a", "b", "a", ""})
	assert.Equal(t, []string{"a", "b"}, product.CategoryIDs)
}

func TestProduct_StockValue(t *testing.T) {
	product, err := NewProduct("Lamp", "LAMP", valueobject.MustMoney("2.50", valueobject.USD))
	require.NoError(t, err)
	product.StockQuantity = 4

	assert.Equal(t, "10.00", product.StockValue().Amount().StringFixed(2))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product, err := NewProduct("Lamp", "LAMP", valueobject.Zero(valueobject.USD))
	require.NoError(t, err)

	product.Activate()
	assert.True(t, product.IsActive)
	product.Deactivate()
	assert.False(t, product.IsActive)
}

func TestNewCategory(t *testing.T) {
	t.Run("valid slug", func(t *testing.T) {
		c, err := NewCategory("Lighting", "lighting_and-lamps")
		require.NoError(t, err)
		assert.Equal(t, "lighting_and-lamps", c.Slug)
	})

	t.Run("invalid slug", func(t *testing.T) {
		_, err := NewCategory("Lighting", "lighting & lamps")
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "slug")
	})
}

func TestNewProductImage(t *testing.T) {
	img, err := NewProductImage("p1", "product_images/p1/a.png", " front ")
	require.NoError(t, err)
	assert.Equal(t, "front", img.AltText)

	_, err = NewProductImage("", "", "")
	require.Error(t, err)
}
