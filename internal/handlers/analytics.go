package handlers

import (
	"net/http"

	"github.com/Skotchmaster/marketplace/internal/service/analytics"
	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	Service *analytics.Aggregator
}

func (h *AnalyticsHandler) MostSoldProducts(c echo.Context) error {
	rows, err := h.Service.MostSoldProducts(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) TopProducts(c echo.Context) error {
	rows, err := h.Service.TopProducts(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) BestSellers(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), analytics.DefaultBestLimit)
	rows, err := h.Service.BestSellers(c.Request().Context(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) BestClients(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), 0)
	rows, err := h.Service.BestClients(c.Request().Context(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *AnalyticsHandler) ClientsPerSeller(c echo.Context) error {
	rows, err := h.Service.ClientsPerSeller(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
