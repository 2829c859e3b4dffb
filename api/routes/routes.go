package routes

import (
	"github.com/WebuildSoft/myrifa-sub001/internal/config"
	"github.com/WebuildSoft/myrifa-sub001/internal/handlers"
	"github.com/WebuildSoft/myrifa-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies carries the handlers wired in main
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	CampaignHandler *handlers.CampaignHandler
	CheckoutHandler *handlers.CheckoutHandler
	PaymentHandler  *handlers.PaymentHandler
	SweeperHandler  *handlers.SweeperHandler
	DrawHandler     *handlers.DrawHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		// Buyer-facing campaign page and checkout
		public.GET("/campaigns/slug/:slug", deps.CampaignHandler.PublicPage)
		public.POST("/campaigns/slug/:slug/checkout",
			middleware.RateLimitMiddleware(cfg), deps.CheckoutHandler.Checkout)

		// Payment provider callback
		public.POST("/payments/webhook", deps.PaymentHandler.Webhook)

		// Expiry sweeper trigger, guarded by a shared token
		public.POST("/sweeper/run",
			middleware.SweeperTokenMiddleware(cfg), deps.SweeperHandler.Run)
	}

	// Organizer routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.GET("/auth/me", deps.AuthHandler.Me)

		campaigns := protected.Group("/campaigns")
		{
			campaigns.GET("", deps.CampaignHandler.List)
			campaigns.POST("", deps.CampaignHandler.Create)
			campaigns.GET("/:id", deps.CampaignHandler.Get)
			campaigns.POST("/:id/activate", deps.CampaignHandler.Activate)
			campaigns.POST("/:id/pause", deps.CampaignHandler.Pause)
			campaigns.POST("/:id/resume", deps.CampaignHandler.Resume)
			campaigns.GET("/:id/stats", deps.CampaignHandler.Stats)
			campaigns.GET("/:id/transactions", deps.CampaignHandler.Transactions)
			campaigns.POST("/:id/prizes/:prizeId/draw", deps.DrawHandler.DrawPrize)
			campaigns.GET("/:id/draw-audits", deps.DrawHandler.ListAudits)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.POST("/:id/confirm", deps.PaymentHandler.Confirm)
			transactions.POST("/:id/cancel", deps.PaymentHandler.Cancel)
		}
	}

	return router
}
