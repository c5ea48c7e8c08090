package handler

import (
	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// OrderHandler exposes order operations over HTTP
type OrderHandler struct {
	BaseHandler
	service *appcrm.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *appcrm.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/crm")
	group.POST("/orders", h.Create)
	group.GET("/orders", h.List)
}

// Create handles POST /crm/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), appcrm.OrderInput{
		CustomerID:  req.CustomerID,
		ProductIDs:  req.ProductIDs,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /crm/orders
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
