package routes

import (
	"github.com/01moynul/vegshop-golang/internal/config"
	"github.com/01moynul/vegshop-golang/internal/handlers"
	"github.com/01moynul/vegshop-golang/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

func SetupRouter(h *handlers.Handlers, cfg *config.Config) (*gin.Engine, error) {
	// Request bodies must match the input structs exactly.
	binding.EnableDecoderDisallowUnknownFields = true
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(h.Log))

	// --- APPLY THE CORS GUARD ---
	// Before anything that can reject a request, so errors still carry CORS headers.
	router.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		// --- Vegetable Routes ---
		api.GET("/vegetables", h.ListVegetables)
		api.POST("/vegetables", h.CreateVegetable)
		api.PUT("/vegetables/:id", h.UpdateVegetable)
		api.DELETE("/vegetables/:id", h.DeleteVegetable)

		// --- Order Routes ---
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders", h.PlaceOrder)
		api.PUT("/orders/:id", h.UpdateOrder)
	}

	return router, nil
}
