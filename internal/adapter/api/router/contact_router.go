package router

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/adapter/api/handler"
	"sproutswap/internal/adapter/api/middleware"
)

func SetupContactRouter(e *echo.Echo, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	contactHandler := handler.GetContactHandler()

	// Public endpoint, throttled by caller IP.
	e.POST("/v1/contact", contactHandler.SubmitContactForm, rateLimitMiddleware.Limit("contact"))
}
