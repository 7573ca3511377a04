package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, h *handler.OrderHandler, authMiddleware *middleware.AuthMiddleware) {
	orders := e.Group("/api/v1/orders")
	orders.Use(authMiddleware.Authenticate)
	orders.POST("", h.CreateOrder)
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.PATCH("/:id/status", h.UpdateOrderStatus)
	orders.POST("/:id/cancel", h.CancelOrder)
}
