package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/carrental/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger.Named("http")))

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		router.Use(auth.NoAuth())
	}

	// Inject auth data for templates
	router.Use(AuthContextMiddleware(cfg.AuthConfig.Mode))

	tmpl := cfg.Templates
	if tmpl == nil {
		var err error
		tmpl, err = LoadTemplates(cfg.TemplatesPath, cfg.Currency)
		if err != nil {
			return nil, fmt.Errorf("failed to load templates: %w", err)
		}
	}
	router.SetHTMLTemplate(tmpl)

	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		auth.NewAuthController(cfg.AuthService, cfg.SessionManager, tmpl, logger.Named("auth")).
			RegisterRoutes(router)
	}

	registerDeskRoutes(router, cfg)

	return router, nil
}

func registerDeskRoutes(router *gin.Engine, cfg RouterConfig) {
	health := NewHealthController(cfg.Database, cfg.Version)
	cars := NewCarsController(cfg.Desk)
	customers := NewCustomersController(cfg.Desk)
	rentals := NewRentalsController(cfg.Desk, cfg.ExportStatus, cfg.ExportQueue != nil)
	exports := NewExportsController(cfg.ExportQueue)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// UI routes
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/cars")
	})
	router.GET("/cars", cars.Page)
	router.POST("/cars", cars.Create)
	router.POST("/cars/:id/delete", cars.Delete)
	router.GET("/customers", customers.Page)
	router.POST("/customers", customers.Create)
	router.POST("/customers/:id/delete", customers.Delete)
	router.GET("/rentals", rentals.Page)
	router.POST("/rentals", rentals.Create)
	router.POST("/rentals/:id/return", rentals.Return)
	router.POST("/rentals/:id/delete", rentals.Delete)
	router.POST("/exports", exports.EnqueueForm)

	api := router.Group("/api")
	{
		api.GET("/cars", cars.List)
		api.POST("/cars", cars.CreateAPI)
		api.GET("/cars/search", cars.Search)
		api.GET("/cars/:id", cars.Get)
		api.GET("/cars/:id/rentals", cars.Rentals)
		api.DELETE("/cars/:id", cars.DeleteAPI)

		api.GET("/customers", customers.List)
		api.POST("/customers", customers.CreateAPI)
		api.GET("/customers/search", customers.Search)
		api.GET("/customers/:id", customers.Get)
		api.DELETE("/customers/:id", customers.DeleteAPI)

		api.GET("/rentals", rentals.List)
		api.POST("/rentals", rentals.CreateAPI)
		api.GET("/rentals/:id", rentals.Get)
		api.DELETE("/rentals/:id", rentals.DeleteAPI)
		api.POST("/rentals/:id/return", rentals.ReturnAPI)


		api.POST("/exports", exports.Enqueue)
		api.GET("/tasks/:id", exports.GetTaskStatus)
	}
}
