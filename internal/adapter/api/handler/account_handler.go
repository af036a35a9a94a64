package handler

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/usecase"
	"sproutswap/pkg/response"
)

type AccountHandler struct {
	accountUseCase *usecase.AccountUseCase
}

func NewAccountHandler(accountUseCase *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
	}
}

// DeleteAccount removes the calling user's account and all associated data.
// Only the account owner can trigger this; the uid comes from the verified
// token, never from the request body.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.accountUseCase.DeleteAccount(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"deleted": true})
}
