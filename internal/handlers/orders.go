package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Skotchmaster/marketplace/internal/auth"
	"github.com/Skotchmaster/marketplace/internal/events"
	"github.com/Skotchmaster/marketplace/internal/service/orders"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	Service  *orders.Coordinator
	Producer *events.Producer
}

func (h *OrderHandler) publish(c echo.Context, eventType string, payload map[string]any) {
	if h.Producer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, eventType, fmt.Sprint(payload["order_id"]), payload); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	caller := auth.Caller(c)

	var req orders.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Response{Status: "error", Message: err.Error()})
	}

	order, err := h.Service.PlaceOrder(c.Request().Context(), caller, req)
	if err != nil {
		return errorResponse(c, err)
	}

	h.publish(c, events.EventOrderPlaced, map[string]any{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"seller_id": order.SellerID,
		"total":     order.Total,
	})

	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) OrdersByClient(c echo.Context) error {
	list, err := h.Service.OrdersByClient(c.Request().Context(), auth.Caller(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) OrdersBySeller(c echo.Context) error {
	list, err := h.Service.OrdersBySeller(c.Request().Context(), auth.Caller(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) ClientsOfSeller(c echo.Context) error {
	list, err := h.Service.ClientsOfSeller(c.Request().Context(), auth.Caller(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, list)
}
