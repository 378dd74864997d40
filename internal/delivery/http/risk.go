package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupRisk(base *echo.Group) {
	base.GET("/assets", h.listAssets)

	risk := base.Group("/risk")
	risk.POST("/calculate", h.calculateRisk)
	risk.POST("/lots", h.solveLots)
	risk.POST("/percent", h.solveRiskPercentage)
}

func (h *HttpAPIHandler) listAssets(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", h.service.RiskService.Assets()))
}

func (h *HttpAPIHandler) calculateRisk(c echo.Context) error {
	req := new(dto.RiskCalculateRequest)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}

	result := h.service.RiskService.Calculate(c.Request().Context(), *req)
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", result))
}

func (h *HttpAPIHandler) solveLots(c echo.Context) error {
	req := new(dto.TradeDraft)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", h.service.RiskService.SolveLots(c.Request().Context(), *req)))
}

func (h *HttpAPIHandler) solveRiskPercentage(c echo.Context) error {
	req := new(dto.TradeDraft)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", h.service.RiskService.SolveRiskPercentage(c.Request().Context(), *req)))
}
