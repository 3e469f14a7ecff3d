package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders のハンドラ。全ルート認証必須。
type OrdersHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrdersHandler(uc *usecase.OrderUsecase) *OrdersHandler {
	return &OrdersHandler{uc: uc}
}

func (h *OrdersHandler) RegisterRoutes(e *echo.Echo, requireAuth echo.MiddlewareFunc) {
	e.POST("/api/orders", h.create, requireAuth)
	e.GET("/api/orders", h.listMine, requireAuth)
}

func (h *OrdersHandler) create(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}

	order, err := h.uc.Create(c.Request().Context(), userID)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrdersHandler) listMine(c echo.Context) error {
	userID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return respondError(c, http.StatusUnauthorized, "Unauthorized", "User not authenticated")
	}

	orders, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return respondUsecaseError(c, err)
	}
	return respond(c, http.StatusOK, "Orders retrieved successfully", orders)
}
