package server

import (
	"net/http"

	"lot-bidding/internal/auth"
	handler "lot-bidding/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// Options carries the optional parts of the router
type Options struct {
	// AllowedOrigins are extra host patterns allowed to open websockets from a browser
	AllowedOrigins []string
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService handler.BiddingServiceInterface, rooms handler.Rooms, jwt auth.JWT, opts Options) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(auth.OptionalAuth(jwt))

	biddingHandler := handler.NewBiddingHandler(biddingService)
	liveHandler := handler.NewLiveHandler(biddingService, rooms, opts.AllowedOrigins)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	lots := router.Group("/lots")
	{
		lots.POST("/:lot_id/bids", auth.RequireAuth(), biddingHandler.PlaceBidHandler)
		lots.POST("/:lot_id/chat", auth.RequireAuth(), biddingHandler.PostChatHandler)
		lots.POST("/:lot_id/close", auth.RequireAuth(), biddingHandler.CloseLotHandler)
		lots.GET("/:lot_id/standing", biddingHandler.GetStandingHandler)
		lots.GET("/:lot_id/history", biddingHandler.GetHistoryHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/lots", biddingHandler.GetLotsByUserHandler)
	}

	router.GET("/ws/lots/:lot_id", liveHandler.ServeLot)

	return router
}
