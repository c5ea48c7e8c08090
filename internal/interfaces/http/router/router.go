package router

import (
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar registers a set of routes on the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router builds the gin engine with the standard middleware chain and
// registers all route groups under /api/v1.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
}

// New creates the engine with request ID, logging, and panic recovery
func New(env string, log *zap.Logger) *Router {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	return &Router{engine: engine}
}

// Register adds a route registrar
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// GET registers a route outside the versioned API group, such as /health
func (r *Router) GET(path string, handlers ...gin.HandlerFunc) *Router {
	r.engine.GET(path, handlers...)
	return r
}

// Setup wires all registered routes and returns the engine
func (r *Router) Setup() *gin.Engine {
	api := r.engine.Group("/api/v1")
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return r.engine
}
