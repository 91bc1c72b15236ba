package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DescriptionGenerator is the external text-generation collaborator. Results
// are not cached; failures are best-effort and non-fatal.
type DescriptionGenerator interface {
	Generate(ctx context.Context, name string, category models.Category) (string, error)
}

// AddProductRequest carries the admin form fields for a new product.
type AddProductRequest struct {
	Name        string
	Description string
	Price       int64
	Category    models.Category
	Images      []string
	Seller      *models.User
}

// ShareLink is a shareable product URL plus suggested share text.
type ShareLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// Catalog holds the product list, newest first, and the admin-side mutators.
type Catalog struct {
	mu        sync.Mutex
	products  []models.Product
	gen       DescriptionGenerator
	publisher *broker.EventPublisher
	writer    Notifier
	baseURL   string
	storeName string
	logger    *zap.Logger
}

// NewCatalog creates a catalog seeded with the persisted product list.
// gen may be nil when no description endpoint is configured.
func NewCatalog(
	products []models.Product,
	gen DescriptionGenerator,
	publisher *broker.EventPublisher,
	writer Notifier,
	baseURL, storeName string,
) *Catalog {
	return &Catalog{
		products:  products,
		gen:       gen,
		publisher: publisher,
		writer:    writer,
		baseURL:   baseURL,
		storeName: storeName,
		logger:    util.GetLogger(),
	}
}

// AddProduct validates the form fields and prepends a new product. On
// validation failure nothing is created.
func (c *Catalog) AddProduct(ctx context.Context, req AddProductRequest) (models.Product, error) {
	ctx, span := util.StartSpan(ctx, "Catalog.AddProduct")
	defer span.End()

	if strings.TrimSpace(req.Name) == "" {
		return models.Product{}, ErrNameRequired
	}
	if req.Price <= 0 {
		return models.Product{}, ErrPriceRequired
	}
	if len(req.Images) == 0 {
		return models.Product{}, ErrImageRequired
	}
	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return models.Product{}, ErrInvalidCategory
	}

	p := models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    category,
		CreatedAt:   time.Now(),
	}
	if req.Seller != nil {
		p.SellerID = req.Seller.ID
		p.SellerName = req.Seller.Name
	}

	c.mu.Lock()
	c.products = append([]models.Product{p}, c.products...)
	c.mu.Unlock()

	util.ProductsAddedTotal.Inc()
	c.notify()

	event := &models.ProductAddedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeProductAdded),
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
	}
	if err := c.publisher.PublishProductAdded(ctx, event); err != nil {
		c.logger.Error("Failed to publish ProductAdded event", zap.Error(err))
	}

	c.logger.Info("Product added",
		zap.String("product_id", p.ID),
		zap.String("name", p.Name),
		zap.Int64("price", p.Price))
	return p, nil
}

// DeleteProduct removes the matching product; idempotent no-op if absent.
func (c *Catalog) DeleteProduct(ctx context.Context, id string) {
	c.mu.Lock()
	removed := false
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()

	if !removed {
		return
	}

	util.ProductsDeletedTotal.Inc()
	c.notify()

	event := &models.ProductDeletedEvent{
		BaseEvent: models.NewBaseEvent(models.EventTypeProductDeleted),
		ProductID: id,
	}
	if err := c.publisher.PublishProductDeleted(ctx, event); err != nil {
		c.logger.Error("Failed to publish ProductDeleted event", zap.Error(err))
	}
}

// Products returns the product list, optionally filtered by a
// case-insensitive name match.
func (c *Catalog) Products(query string) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	if query == "" {
		products := make([]models.Product, len(c.products))
		copy(products, c.products)
		return products
	}

	query = strings.ToLower(query)
	var filtered []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), query) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Get retrieves a product by id.
func (c *Catalog) Get(id string) (models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Describe asks the external collaborator for a product description.
func (c *Catalog) Describe(ctx context.Context, name string, category models.Category) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrNameRequired
	}
	if c.gen == nil {
		return "", ErrNoDescriptionGenerator
	}
	return c.gen.Generate(ctx, name, category)
}

// ShareLinkFor derives a shareable URL embedding the product id and price as
// query parameters, plus suggested share text.
func (c *Catalog) ShareLinkFor(id string) (ShareLink, error) {
	p, err := c.Get(id)
	if err != nil {
		return ShareLink{}, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ShareLink{}, err
	}
	q := u.Query()
	q.Set("product", p.ID)
	q.Set("p", strconv.FormatInt(p.Price, 10))
	u.RawQuery = q.Encode()

	return ShareLink{
		URL:  u.String(),
		Text: "Check out " + p.Name + " at " + c.storeName + "! Only Rs. " + strconv.FormatInt(p.Price, 10) + ".",
	}, nil
}

func (c *Catalog) notify() {
	if c.writer != nil {
		c.writer.Notify()
	}
}
