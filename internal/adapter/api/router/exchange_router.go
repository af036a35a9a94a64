package router

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/adapter/api/handler"
	"sproutswap/internal/adapter/api/middleware"
)

func SetupExchangeRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	exchangeHandler := handler.GetExchangeHandler()

	exchanges := e.Group("/v1/exchanges")
	exchanges.Use(authMiddleware.Authenticate)

	exchanges.POST("", exchangeHandler.CreateOffer, rateLimitMiddleware.Limit("create_offer"))
	exchanges.GET("", exchangeHandler.ListExchanges)
	exchanges.GET("/pending-check", exchangeHandler.CheckPending)
	exchanges.GET("/:id", exchangeHandler.GetExchange)
	exchanges.PATCH("/:id/status", exchangeHandler.UpdateStatus)
	exchanges.POST("/:id/reviews", exchangeHandler.SubmitReview)
}
