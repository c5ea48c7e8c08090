package handler

import (
	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ProductHandler exposes product operations over HTTP
type ProductHandler struct {
	BaseHandler
	service *appcrm.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(service *appcrm.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/crm")
	group.POST("/products", h.Create)
	group.GET("/products", h.List)
	group.POST("/products/low-stock", h.UpdateLowStock)
}

// Create handles POST /crm/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), appcrm.ProductInput{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /crm/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// UpdateLowStock handles POST /crm/products/low-stock
func (h *ProductHandler) UpdateLowStock(c *gin.Context) {
	result, err := h.service.UpdateLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
