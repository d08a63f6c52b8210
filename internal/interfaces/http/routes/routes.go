// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	SetupCartRoutes(rg, db, redisClient, cfg, log)
	SetupProductRoutes(rg, db, cfg)
	SetupDeliveryRoutes(rg, db, redisClient, cfg)
}

// SetupCartRoutes sets up cart related routes. Carts are keyed by an
// anonymous session cookie; no authentication is involved.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg, log)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.UpdateItemQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
		cart.PUT("/delivery", cartHandler.SetDelivery)
	}
}

// SetupProductRoutes sets up catalog related routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/sku/:sku", productHandler.GetProductBySKU)
		products.POST("", productHandler.CreateProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
	}
}

// SetupDeliveryRoutes sets up serviceability routes
func SetupDeliveryRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	deliveryHandler := handlers.NewDeliveryHandler(db, redisClient, cfg)

	del := rg.Group("/delivery")
	{
		del.GET("/:pincode", deliveryHandler.CheckPincode)
		del.PUT("/:pincode", deliveryHandler.UpsertPincode)
	}
}
