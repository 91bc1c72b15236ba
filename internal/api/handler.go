package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog  *service.Catalog
	cart     *service.CartEngine
	checkout *service.CheckoutEngine
	auth     *service.AuthService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.Catalog,
	cart *service.CartEngine,
	checkout *service.CheckoutEngine,
	auth *service.AuthService,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		auth:     auth,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id/share", h.shareProduct)
		v1.POST("/products", h.adminOnly(), h.createProduct)
		v1.POST("/products/describe", h.adminOnly(), h.describeProduct)
		v1.DELETE("/products/:id", h.adminOnly(), h.deleteProduct)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PATCH("/cart/items/:id", h.updateCartItem)
		v1.DELETE("/cart/items/:id", h.removeCartItem)

		v1.GET("/checkout", h.getCheckout)
		v1.POST("/checkout/begin", h.beginCheckout)
		v1.POST("/checkout/shipping", h.setShipping)
		v1.POST("/checkout/confirm", h.confirmCheckout)
		v1.POST("/checkout/close", h.closeCheckout)
		v1.POST("/checkout/whatsapp", h.whatsappCheckout)

		v1.GET("/orders", h.adminOnly(), h.listOrders)

		v1.POST("/auth/login", h.login)
		v1.POST("/auth/logout", h.logout)
		v1.GET("/auth/me", h.me)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts returns the catalog, optionally filtered by ?q=
func (h *Handler) listProducts(c *gin.Context) {
	products := h.catalog.Products(c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       int64           `json:"price"`
	Category    models.Category `json:"category"`
	Images      []string        `json:"images"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.catalog.AddProduct(c.Request.Context(), service.AddProductRequest{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Seller:      h.auth.Current(),
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	h.catalog.DeleteProduct(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

type describeRequest struct {
	Name     string          `json:"name"`
	Category models.Category `json:"category"`
}

func (h *Handler) describeProduct(c *gin.Context) {
	var req describeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	description, err := h.catalog.Describe(c.Request.Context(), req.Name, req.Category)
	if err != nil {
		if errors.Is(err, service.ErrNameRequired) || errors.Is(err, service.ErrNoDescriptionGenerator) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Description generation failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"description": description})
}

func (h *Handler) shareProduct(c *gin.Context) {
	link, err := h.catalog.ShareLinkFor(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":  h.cart.Items(),
		"totals": h.cart.Totals(),
		"count":  h.cart.Count(),
	})
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	product, err := h.catalog.Get(req.ProductID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, h.cart.AddItem(product))
}

type updateCartItemRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	item, err := h.cart.UpdateQuantity(c.Param("id"), req.Delta)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) removeCartItem(c *gin.Context) {
	h.cart.RemoveItem(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) getCheckout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state":  h.checkout.State(),
		"totals": h.cart.Totals(),
	})
}

func (h *Handler) beginCheckout(c *gin.Context) {
	if err := h.checkout.Begin(); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.checkout.State())
}

type shippingRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
}

func (h *Handler) setShipping(c *gin.Context) {
	var req shippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.checkout.SetShipping(req.Address, req.City); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.checkout.State())
}

type confirmRequest struct {
	Account string `json:"account"`
}

func (h *Handler) confirmCheckout(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, err := h.checkout.Confirm(c.Request.Context(), req.Account)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) closeCheckout(c *gin.Context) {
	h.checkout.Close()
	c.JSON(http.StatusOK, h.checkout.State())
}

func (h *Handler) whatsappCheckout(c *gin.Context) {
	link, err := h.checkout.WhatsAppLink()
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}

func (h *Handler) listOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": h.checkout.Orders()})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) logout(c *gin.Context) {
	h.auth.Logout()
	c.Status(http.StatusNoContent)
}

func (h *Handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": h.auth.Current()})
}

// adminOnly guards admin-side mutators and the order ledger.
func (h *Handler) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.auth.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin login required"})
			return
		}
		c.Next()
	}
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidStep),
		errors.Is(err, service.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrAddressRequired),
		errors.Is(err, service.ErrUnknownCity),
		errors.Is(err, service.ErrAccountRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrPriceRequired),
		errors.Is(err, service.ErrImageRequired),
		errors.Is(err, service.ErrInvalidCategory):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
