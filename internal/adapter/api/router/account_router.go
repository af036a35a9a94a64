package router

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/adapter/api/handler"
	"sproutswap/internal/adapter/api/middleware"
)

func SetupAccountRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	accountHandler := handler.GetAccountHandler()

	account := e.Group("/v1/account")
	account.Use(authMiddleware.Authenticate)

	account.DELETE("", accountHandler.DeleteAccount)
}
