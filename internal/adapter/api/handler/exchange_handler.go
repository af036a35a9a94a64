package handler

import (
	"github.com/labstack/echo/v4"

	"sproutswap/internal/usecase"
	"sproutswap/pkg/errors"
	"sproutswap/pkg/response"
	"sproutswap/pkg/utils"
)

type ExchangeHandler struct {
	exchangeUseCase *usecase.ExchangeUseCase
}

func NewExchangeHandler(exchangeUseCase *usecase.ExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeUseCase: exchangeUseCase,
	}
}

type createOfferRequest struct {
	ProductID        string `json:"productId" validate:"required"`
	OfferType        string `json:"offerType" validate:"required,oneof=exchange chat"`
	OfferedProductID string `json:"offeredProductId,omitempty"`
	Message          string `json:"message,omitempty" validate:"max=500"`
}

func (h *ExchangeHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	exchange, err := h.exchangeUseCase.CreateOffer(c.Request().Context(), userID, usecase.CreateOfferInput{
		ProductID:        req.ProductID,
		OfferType:        req.OfferType,
		OfferedProductID: req.OfferedProductID,
		Message:          req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, exchange)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed"`
}

func (h *ExchangeHandler) UpdateStatus(c echo.Context) error {
	exchangeID := c.Param("id")
	if exchangeID == "" {
		return response.Error(c, errors.BadRequest("Exchange ID is required", nil))
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	exchange, err := h.exchangeUseCase.UpdateStatus(c.Request().Context(), userID, exchangeID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, exchange)
}

type submitReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" validate:"max=280"`
}

func (h *ExchangeHandler) SubmitReview(c echo.Context) error {
	exchangeID := c.Param("id")
	if exchangeID == "" {
		return response.Error(c, errors.BadRequest("Exchange ID is required", nil))
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	exchange, err := h.exchangeUseCase.SubmitReview(c.Request().Context(), userID, exchangeID, usecase.SubmitReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, exchange)
}

func (h *ExchangeHandler) GetExchange(c echo.Context) error {
	exchangeID := c.Param("id")
	if exchangeID == "" {
		return response.Error(c, errors.BadRequest("Exchange ID is required", nil))
	}

	userID := c.Get("uid").(string)

	exchange, err := h.exchangeUseCase.GetByID(c.Request().Context(), userID, exchangeID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, exchange)
}

func (h *ExchangeHandler) ListExchanges(c echo.Context) error {
	userID := c.Get("uid").(string)
	role := c.QueryParam("role")
	status := c.QueryParam("status")

	pagination := utils.GetPaginationParams(c)

	exchanges, total, err := h.exchangeUseCase.List(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, exchanges, total, pagination.Page, pagination.PageSize)
}

func (h *ExchangeHandler) CheckPending(c echo.Context) error {
	productID := c.QueryParam("productId")
	if productID == "" {
		return response.Error(c, errors.BadRequest("productId query parameter is required", nil))
	}

	userID := c.Get("uid").(string)

	hasPending, err := h.exchangeUseCase.HasPendingExchange(c.Request().Context(), userID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"hasPendingExchange": hasPending})
}
