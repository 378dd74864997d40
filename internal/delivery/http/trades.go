package http

import (
	"net/http"

	"trading-journal/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTrades(base *echo.Group) {
	trades := base.Group("/trades")
	trades.GET("", h.listTrades)
	trades.POST("", h.createTrade)
	trades.GET("/:id", h.getTrade)
	trades.PATCH("/:id", h.editTrade)
	trades.POST("/:id/flush", h.flushTrade)
	trades.POST("/:id/close", h.closeTrade)
	trades.DELETE("/:id", h.deleteTrade)
	trades.POST("/:id/restore", h.restoreTrade)
}

func (h *HttpAPIHandler) listTrades(c echo.Context) error {
	q := new(dto.StatsQuery)
	if ok, err := h.bindAndValidate(c, q); !ok {
		return err
	}

	views, err := h.service.TradeService.List(c.Request().Context(), *q)
	if err != nil {
		return h.errorResponse(c, err, "failed to list trades")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", views))
}

func (h *HttpAPIHandler) createTrade(c echo.Context) error {
	req := new(dto.CreateTradeRequest)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}

	trade, err := h.service.TradeService.Create(c.Request().Context(), *req)
	if err != nil {
		return h.errorResponse(c, err, "failed to create trade")
	}
	return c.JSON(http.StatusCreated, dto.NewBaseResponse(http.StatusCreated, "trade created", trade))
}

func (h *HttpAPIHandler) getTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}

	trade, err := h.service.TradeService.Get(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err, "failed to get trade")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("ok", trade))
}

// editTrade queues the change; the response reports the edit session state, not a write.
func (h *HttpAPIHandler) editTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}
	req := new(dto.UpdateTradeRequest)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}

	status, err := h.service.TradeService.Edit(c.Request().Context(), id, *req)
	if err != nil {
		return h.errorResponse(c, err, "failed to edit trade")
	}
	return c.JSON(http.StatusAccepted, dto.NewBaseResponse(http.StatusAccepted, "edit queued", status))
}

func (h *HttpAPIHandler) flushTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}

	status, err := h.service.TradeService.Flush(c.Request().Context(), id)
	if err != nil {
		return h.errorResponse(c, err, "failed to save trade")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("saved", status))
}

func (h *HttpAPIHandler) closeTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}
	req := new(dto.CloseTradeRequest)
	if ok, err := h.bindAndValidate(c, req); !ok {
		return err
	}

	trade, err := h.service.TradeService.Close(c.Request().Context(), id, *req)
	if err != nil {
		return h.errorResponse(c, err, "failed to close trade")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade closed", trade))
}

func (h *HttpAPIHandler) deleteTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}
	if err := h.service.TradeService.Delete(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err, "failed to delete trade")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade moved to trash", nil))
}

func (h *HttpAPIHandler) restoreTrade(c echo.Context) error {
	id, ok := paramUint(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid trade id"))
	}
	if err := h.service.TradeService.Restore(c.Request().Context(), id); err != nil {
		return h.errorResponse(c, err, "failed to restore trade")
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse("trade restored", nil))
}
