package router

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	SetupExchangeRouter(e, authMiddleware, rateLimitMiddleware)
	SetupChatRouter(e, authMiddleware, rateLimitMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupAccountRouter(e, authMiddleware)
	SetupContactRouter(e, rateLimitMiddleware)
	SetupHealthRouter(e)
}
