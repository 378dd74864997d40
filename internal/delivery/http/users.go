package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupUsers(base *echo.Group) {
	users := base.Group("/users/:user_id")
	users.GET("/settings", h.getSettings)
	users.PUT("/settings", h.saveSettings)
	users.GET("/accounts", h.listAccounts)
}

func (h *HttpAPIHandler) getSettings(c echo.Context) error {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid user id"))
	}

	settings, err := h.service.SettingsService.Get(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, err, "failed to get settings")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", settings))
}

func (h *HttpAPIHandler) saveSettings(c echo.Context) error {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid user id"))
	}
	req := new(dto.SaveSettingsRequest)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}

	settings, err := h.service.SettingsService.Save(c.Request().Context(), userID, *req)
	if err != nil {
		return h.errorResponse(c, err, "failed to save settings")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("settings saved", settings))
}

func (h *HttpAPIHandler) listAccounts(c echo.Context) error {
	userID, ok := paramUint(c, "user_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid user id"))
	}

	accounts, err := h.service.TradeService.Accounts(c.Request().Context(), userID)
	if err != nil {
		return h.errorResponse(c, err, "failed to list accounts")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", accounts))
}
