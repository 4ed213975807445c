package service

import (
	"testing"

	"chat-powered-ecommerce/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	return NewProductService(db, nil, testLogger()), db
}

func TestCreateProduct(t *testing.T) {
	svc, db := newProductService(t)

	require.NoError(t, db.Create(&models.Color{Name: "red"}).Error)
	require.NoError(t, db.Create(&models.Color{Name: "blue"}).Error)

	product, err := svc.CreateProduct(&models.CreateProductRequest{
		Name:         "Canvas Tote",
		Description:  "A sturdy bag",
		ItemQuantity: 10,
		Price:        2499,
		ColorIDs:     []uint{1, 2},
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "$24.99", product.PriceInDollars())

	got, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, got.Colors, 2)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newProductService(t)

	_, err := svc.CreateProduct(&models.CreateProductRequest{Name: "   ", Price: 100})
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = svc.CreateProduct(&models.CreateProductRequest{Name: "Tote", Price: -1})
	assert.ErrorIs(t, err, ErrNegativeValue)

	_, err = svc.CreateProduct(&models.CreateProductRequest{Name: "Tote", Price: 100, ItemQuantity: -5})
	assert.ErrorIs(t, err, ErrNegativeValue)
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newProductService(t)

	product, err := svc.CreateProduct(&models.CreateProductRequest{Name: "Tote", Price: 2499, ItemQuantity: 10})
	require.NoError(t, err)

	newPrice := int64(1999)
	updated, err := svc.UpdateProduct(product.ID, &models.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)

	got, err := svc.GetProduct(updated.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1999, got.Price)
	assert.Equal(t, "Tote", got.Name)

	blank := "  "
	_, err = svc.UpdateProduct(product.ID, &models.UpdateProductRequest{Name: &blank})
	assert.ErrorIs(t, err, ErrBlankField)

	_, err = svc.UpdateProduct(9999, &models.UpdateProductRequest{Price: &newPrice})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newProductService(t)

	product, err := svc.CreateProduct(&models.CreateProductRequest{Name: "Tote", Price: 2499})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(product.ID))
	assert.ErrorIs(t, svc.DeleteProduct(product.ID), ErrProductNotFound)

	_, err = svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestListProductsUsesLocalCache(t *testing.T) {
	svc, db := newProductService(t)

	_, err := svc.CreateProduct(&models.CreateProductRequest{Name: "Tote", Price: 2499})
	require.NoError(t, err)

	first, err := svc.ListProducts()
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A write that bypasses the service is invisible until invalidation.
	require.NoError(t, db.Create(&models.Product{Name: "Sneaky", Price: 1}).Error)

	second, err := svc.ListProducts()
	require.NoError(t, err)
	assert.Len(t, second, 1)

	// A service write invalidates the cache.
	_, err = svc.CreateProduct(&models.CreateProductRequest{Name: "Mug", Price: 899})
	require.NoError(t, err)

	third, err := svc.ListProducts()
	require.NoError(t, err)
	assert.Len(t, third, 3)
}
