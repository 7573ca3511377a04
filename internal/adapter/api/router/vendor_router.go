package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

func SetupVendorRouter(e *echo.Echo, h *handler.VendorHandler, authMiddleware *middleware.AuthMiddleware) {
	vendors := e.Group("/api/v1/vendors")
	vendors.GET("", h.ListVendors)
	vendors.GET("/:id", h.GetVendor)

	managed := e.Group("/api/v1/vendors")
	managed.Use(authMiddleware.Authenticate)
	managed.POST("", h.RegisterVendor)
	managed.PATCH("/:id", h.UpdateVendor)
	managed.DELETE("/:id", h.DeleteVendor)

	me := e.Group("/api/v1/my-vendor")
	me.Use(authMiddleware.Authenticate)
	me.GET("", h.GetMyVendor)
}
