package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pos-service/internal/checkout"
	"pos-service/internal/models"
	"pos-service/internal/money"
	"pos-service/internal/service"
	"pos-service/internal/util"
)

// OrderStore serves the order/receipt read path.
type OrderStore interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
}

// Handler contains HTTP handlers
type Handler struct {
	checkoutService *checkout.Service
	customerService *service.CustomerService
	catalogService  *service.CatalogService
	orders          OrderStore
	tenantID        string
}

// NewHandler creates a new HTTP handler
func NewHandler(
	checkoutService *checkout.Service,
	customerService *service.CustomerService,
	catalogService *service.CatalogService,
	orders OrderStore,
	tenantID string,
) *Handler {
	return &Handler{
		checkoutService: checkoutService,
		customerService: customerService,
		catalogService:  catalogService,
		orders:          orders,
		tenantID:        tenantID,
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

		v1.GET("/customers", h.searchCustomers)
		v1.POST("/customers/quick-register", h.quickRegister)

		v1.GET("/orders/:id", h.getOrder)

		pos := v1.Group("/pos/sessions")
		{
			pos.POST("", h.openSession)
			pos.GET("/:id", h.getSession)
			pos.POST("/:id/items", h.addItem)
			pos.PATCH("/:id/items/:productId", h.editItem)
			pos.POST("/:id/items/:productId/quantity", h.updateQuantity)
			pos.DELETE("/:id/items/:productId", h.removeItem)
			pos.PUT("/:id/customer", h.selectCustomer)
			pos.PUT("/:id/payment-method", h.setPaymentMethod)
			pos.PUT("/:id/installments", h.setInstallmentCount)
			pos.PATCH("/:id/installments/:seq", h.editInstallmentDueDate)
			pos.POST("/:id/checkout", h.checkout)
			pos.POST("/:id/checkout/confirm", h.confirmCredit)
			pos.POST("/:id/checkout/cancel", h.cancelCredit)
			pos.POST("/:id/acknowledge", h.acknowledgeOrder)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError maps the typed error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindConflict:
		status = http.StatusConflict
	case models.KindNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalogService.ListProducts(c.Request.Context(), h.tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) searchCustomers(c *gin.Context) {
	customers, err := h.customerService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *Handler) quickRegister(c *gin.Context) {
	var req service.QuickRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	customer, err := h.customerService.QuickRegister(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	// The new customer is attached right away when a session id is given,
	// so the operator can continue the sale without re-selecting.
	if sessionID := c.Query("session_id"); sessionID != "" {
		if _, err := h.checkoutService.AttachCustomer(sessionID, customer); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := h.orders.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) openSession(c *gin.Context) {
	c.JSON(http.StatusCreated, h.checkoutService.OpenSession())
}

func (h *Handler) getSession(c *gin.Context) {
	view, err := h.checkoutService.GetSession(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Size      string `json:"size"`
}

func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.checkoutService.AddItem(c.Request.Context(), c.Param("id"), req.ProductID, req.Size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// editItemRequest carries operator-typed strings; they go through the
// money parsers so bad input surfaces as a validation failure.
type editItemRequest struct {
	Price    string `json:"price" binding:"required"`
	Quantity string `json:"quantity" binding:"required"`
}

func (h *Handler) editItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req editItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	price, err := money.ParseAmount(req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	quantity, err := money.ParseQuantity(req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.checkoutService.EditItem(c.Param("id"), productID, price, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type quantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

func (h *Handler) updateQuantity(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.checkoutService.UpdateQuantity(c.Param("id"), productID, req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) removeItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	view, err := h.checkoutService.RemoveItem(c.Param("id"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type selectCustomerRequest struct {
	CustomerID *int64 `json:"customer_id"`
}

func (h *Handler) selectCustomer(c *gin.Context) {
	var req selectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.checkoutService.SelectCustomer(c.Request.Context(), c.Param("id"), req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type paymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}

func (h *Handler) setPaymentMethod(c *gin.Context) {
	var req paymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.checkoutService.SetPaymentMethod(c.Param("id"), method)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Count is not required-validated here: out-of-range values, zero
// included, are clamped by the scheduler.
type installmentCountRequest struct {
	Count int `json:"count"`
}

func (h *Handler) setInstallmentCount(c *gin.Context) {
	var req installmentCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.checkoutService.SetInstallmentCount(c.Param("id"), req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type dueDateRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

func (h *Handler) editInstallmentDueDate(c *gin.Context) {
	seq, err := strconv.Atoi(c.Param("seq"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid installment sequence"})
		return
	}

	var req dueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.checkoutService.EditInstallmentDueDate(c.Param("id"), seq, req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) checkout(c *gin.Context) {
	result, err := h.checkoutService.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) confirmCredit(c *gin.Context) {
	result, err := h.checkoutService.ConfirmCredit(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) cancelCredit(c *gin.Context) {
	view, err := h.checkoutService.CancelCredit(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) acknowledgeOrder(c *gin.Context) {
	view, err := h.checkoutService.AcknowledgeOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
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
