package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRates(base *echo.Group) {
	base.GET("/rates/convert", h.convert)
}

// convert never blocks on the provider; an unknown rate comes back pending.
func (h *HttpAPIHandler) convert(c echo.Context) error {
	q := new(dto.ConvertQuery)
	if ok, err := h.bindAndValidate(c, q); !ok {
		return err
	}
	result := h.service.CurrencyService.Convert(c.Request().Context(), q.Amount, q.Currency)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}
