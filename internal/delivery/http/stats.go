package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStats(base *echo.Group) {
	stats := base.Group("/stats")
	stats.GET("/dashboard", h.dashboard)
	stats.GET("/breakdown", h.breakdown)
}

func (h *HttpAPIHandler) dashboard(c echo.Context) error {
	q := new(dto.StatsQuery)
	if ok, err := h.bindAndValidate(c, q); !ok {
		return err
	}

	result, err := h.service.AnalyticsService.Dashboard(c.Request().Context(), *q)
	if err != nil {
		return h.errorResponse(c, err, "failed to build dashboard")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}

func (h *HttpAPIHandler) breakdown(c echo.Context) error {
	q := new(dto.BreakdownQuery)
	if ok, err := h.bindAndValidate(c, q); !ok {
		return err
	}

	result, err := h.service.AnalyticsService.Breakdown(c.Request().Context(), *q)
	if err != nil {
		return h.errorResponse(c, err, "failed to build breakdown")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}
