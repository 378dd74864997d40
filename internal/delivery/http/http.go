package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"trading-journal/internal/dto"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	log       *logger.Logger
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, log *logger.Logger, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
		log:       log,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api/v1")
	h.SetupRisk(base)
	h.SetupStats(base)
	h.SetupTrades(base)
	h.SetupUsers(base)
	h.SetupRates(base)
}

// bindAndValidate binds the request into req and runs struct validation. On failure it
// has already written the 400 response and returns false.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request"))
	}
	if err := h.validator.Struct(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}
	return true, nil
}

func (h *HttpAPIHandler) errorResponse(c echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, dto.ErrTradeNotFound), errors.Is(err, dto.ErrAccountNotFound):
		return c.JSON(http.StatusNotFound, dto.NewNotFoundResponse(err.Error()))
	case errors.Is(err, dto.ErrTradeClosed), errors.Is(err, dto.ErrTradeChanged):
		return c.JSON(http.StatusConflict, dto.NewBaseResponse(http.StatusConflict, err.Error(), nil))
	case errors.Is(err, dto.ErrRateUnavailable):
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	default:
		h.log.ErrorContext(c.Request().Context(), message, logger.ErrorField(err), logger.StringField("path", c.Path()))
		return c.JSON(http.StatusInternalServerError, dto.NewInternalErrorResponse(message))
	}
}

func paramUint(c echo.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
