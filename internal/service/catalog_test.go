package service

import (
	"context"
	"net/url"
	"testing"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog() *Catalog {
	return NewCatalog(nil, nil, broker.NewEventPublisher(nil), nil, "https://store.example", "Test Store")
}

func TestAddProductValidation(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	_, err := catalog.AddProduct(ctx, AddProductRequest{Price: 500, Images: []string{"a.png"}})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = catalog.AddProduct(ctx, AddProductRequest{Name: "X", Images: []string{"a.png"}})
	assert.ErrorIs(t, err, ErrPriceRequired)

	_, err = catalog.AddProduct(ctx, AddProductRequest{Name: "X", Price: 500})
	assert.ErrorIs(t, err, ErrImageRequired)

	_, err = catalog.AddProduct(ctx, AddProductRequest{
		Name: "X", Price: 500, Images: []string{"a.png"}, Category: "Vehicles",
	})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// no partial product is created on validation failure
	assert.Empty(t, catalog.Products(""))
}

func TestAddProductPrepends(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	first, err := catalog.AddProduct(ctx, AddProductRequest{
		Name: "X", Price: 500, Images: []string{"a.png"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, models.CategoryOther, first.Category)
	require.Len(t, catalog.Products(""), 1)

	second, err := catalog.AddProduct(ctx, AddProductRequest{
		Name: "Y", Price: 700, Images: []string{"b.png"}, Category: models.CategoryFashion,
	})
	require.NoError(t, err)

	products := catalog.Products("")
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)
}

func TestAddProductRecordsSeller(t *testing.T) {
	catalog := newTestCatalog()

	seller := &models.User{ID: "admin", Name: "Store Admin", Role: models.RoleAdmin}
	p, err := catalog.AddProduct(context.Background(), AddProductRequest{
		Name: "X", Price: 500, Images: []string{"a.png"}, Seller: seller,
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", p.SellerID)
	assert.Equal(t, "Store Admin", p.SellerName)
}

func TestDeleteProductIdempotent(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	p, err := catalog.AddProduct(ctx, AddProductRequest{
		Name: "X", Price: 500, Images: []string{"a.png"},
	})
	require.NoError(t, err)

	catalog.DeleteProduct(ctx, p.ID)
	assert.Empty(t, catalog.Products(""))

	catalog.DeleteProduct(ctx, p.ID) // absent id is a no-op
	assert.Empty(t, catalog.Products(""))
}

func TestProductsSearchFilter(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	_, err := catalog.AddProduct(ctx, AddProductRequest{Name: "Desk Lamp", Price: 500, Images: []string{"a.png"}})
	require.NoError(t, err)
	_, err = catalog.AddProduct(ctx, AddProductRequest{Name: "Office Chair", Price: 900, Images: []string{"b.png"}})
	require.NoError(t, err)

	matches := catalog.Products("lamp")
	require.Len(t, matches, 1)
	assert.Equal(t, "Desk Lamp", matches[0].Name)

	assert.Empty(t, catalog.Products("sofa"))
	assert.Len(t, catalog.Products(""), 2)
}

func TestShareLink(t *testing.T) {
	catalog := newTestCatalog()

	p, err := catalog.AddProduct(context.Background(), AddProductRequest{
		Name: "Desk Lamp", Price: 500, Images: []string{"a.png"},
	})
	require.NoError(t, err)

	link, err := catalog.ShareLinkFor(p.ID)
	require.NoError(t, err)

	u, err := url.Parse(link.URL)
	require.NoError(t, err)
	assert.Equal(t, p.ID, u.Query().Get("product"))
	assert.Equal(t, "500", u.Query().Get("p"))
	assert.Contains(t, link.Text, "Desk Lamp")
	assert.Contains(t, link.Text, "Test Store")

	_, err = catalog.ShareLinkFor("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDescribeRequiresNameAndGenerator(t *testing.T) {
	catalog := newTestCatalog()
	ctx := context.Background()

	_, err := catalog.Describe(ctx, "", models.CategoryHome)
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = catalog.Describe(ctx, "Desk Lamp", models.CategoryHome)
	assert.ErrorIs(t, err, ErrNoDescriptionGenerator)
}
