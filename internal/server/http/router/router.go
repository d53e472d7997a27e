package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/cardafy/cardafy/internal/server/http/handlers"
	"github.com/cardafy/cardafy/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	sessionHandler := handlers.NewSessionHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	escrowHandler := handlers.NewEscrowHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)

	api := engine.Group("/api")
	session := api.Group("/session")
	session.POST("/login", sessionHandler.Login)
	session.POST("/logout", sessionHandler.Logout)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	cart := authed.Group("/cart")
	cart.POST("", cartHandler.Add)
	cart.GET("", cartHandler.List)
	cart.DELETE("/:id", cartHandler.Delete)

	catalog := authed.Group("/catalog")
	catalog.GET("/:tier", catalogHandler.List)
	catalog.GET("/:tier/:slug", catalogHandler.Get)

	orders := authed.Group("/orders")
	orders.POST("", orderHandler.Checkout)
	orders.GET("", orderHandler.List)
	orders.GET("/mine", escrowHandler.Buyer)
	orders.POST("/:txID/advance", orderHandler.Advance)
	orders.DELETE("/:txID", orderHandler.Delete)

	escrow := authed.Group("/escrow")
	escrow.GET("", escrowHandler.Merchant)
	escrow.POST("/withdraw", escrowHandler.Withdraw)

	authed.POST("/chat", chatHandler.Chat)

	return engine
}
