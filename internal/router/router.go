package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-admin/internal/handler"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/pkg/validator"
)

type RouterConfig struct {
	Mode       string
	CORSConfig middleware.CORSConfig
	// MaxBodyBytes caps JSON bodies on every route; 0 disables the cap.
	MaxBodyBytes int64
}

// Router mounts the handlers under /api/v1 in three groups: public,
// protected (any signed-in user) and admin.
type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	metrics  gin.HandlerFunc
	handlers []handler.Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	metrics gin.HandlerFunc,
	config RouterConfig,
	handlers ...handler.Handler,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	validator.RegisterGin()

	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth,
		metrics:  metrics,
		handlers: handlers,
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.SecurityHeaders(),
		middleware.CORS(config.CORSConfig),
	)
	if metrics != nil {
		engine.Use(metrics)
	}
	if config.MaxBodyBytes > 0 {
		engine.Use(middleware.SizeLimit(config.MaxBodyBytes))
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	admin := protected.Group("")
	admin.Use(r.auth.RequireAdmin())

	routes := handler.Routes{
		Public:    api,
		Protected: protected,
		Admin:     admin,
	}
	for _, h := range r.handlers {
		h.RegisterRoutes(routes)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
