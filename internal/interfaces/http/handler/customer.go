package handler

import (
	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CustomerHandler exposes customer operations over HTTP
type CustomerHandler struct {
	BaseHandler
	service *appcrm.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *appcrm.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/crm")
	group.POST("/customers", h.Create)
	group.POST("/customers/bulk", h.BulkCreate)
	group.GET("/customers", h.List)
}

// Create handles POST /crm/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.Create(c.Request.Context(), appcrm.CustomerInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// BulkCreate handles POST /crm/customers/bulk. Valid inputs are persisted
// even when others in the same request fail, so a 201 response can still
// carry per-record errors.
func (h *CustomerHandler) BulkCreate(c *gin.Context) {
	var req dto.BulkCreateCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	inputs := make([]appcrm.CustomerInput, len(req.Customers))
	for i, customer := range req.Customers {
		inputs[i] = appcrm.CustomerInput{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		}
	}

	result, err := h.service.BulkCreate(c.Request.Context(), inputs)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List handles GET /crm/customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}
