package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/server/handlers"
	"github.com/Damaurora/DamaskVapers/internal/server/middleware"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Catalog  *handlers.CatalogHandler
	Settings *handlers.SettingsHandler
	Auth     *handlers.AuthHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, verifier middleware.TokenVerifier, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", h.Auth.Login)

	api.GET("/categories", h.Catalog.ListCategories)
	api.GET("/categories/slug/:slug", h.Catalog.GetCategoryBySlug)
	api.GET("/categories/:id", h.Catalog.GetCategory)

	api.GET("/products", h.Catalog.ListProducts)
	api.GET("/products/featured", h.Catalog.ListFeaturedProducts)
	api.GET("/products/category/:categoryId", h.Catalog.ListProductsByCategory)
	api.GET("/products/:id", h.Catalog.GetProduct)

	api.GET("/stores", h.Catalog.ListStores)
	api.GET("/stores/:id", h.Catalog.GetStore)

	api.GET("/inventory/product/:productId", h.Catalog.ProductInventory)
	api.GET("/inventory/store/:storeId", h.Catalog.StoreInventory)

	api.GET("/settings", h.Settings.Get)

	admin := api.Group("", middleware.RequireAdmin(verifier))

	admin.GET("/auth/me", h.Auth.Me)

	admin.POST("/categories", h.Catalog.CreateCategory)
	admin.PUT("/categories/:id", h.Catalog.UpdateCategory)
	admin.DELETE("/categories/:id", h.Catalog.DeleteCategory)

	admin.POST("/products", h.Catalog.CreateProduct)
	admin.PUT("/products/:id", h.Catalog.UpdateProduct)
	admin.DELETE("/products/:id", h.Catalog.DeleteProduct)

	admin.POST("/stores", h.Catalog.CreateStore)
	admin.PUT("/stores/:id", h.Catalog.UpdateStore)
	admin.DELETE("/stores/:id", h.Catalog.DeleteStore)

	admin.PUT("/inventory/:productId/:storeId", h.Catalog.SetStoreQuantity)

	admin.PATCH("/settings", h.Settings.Update)
	admin.POST("/settings/sync-google-sheets", h.Settings.Sync)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r, nil
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
