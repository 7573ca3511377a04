// Package router wires the HTTP routes. Handlers and middleware are passed
// in from the composition root; nothing here reaches for globals.
package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Vendor   *handler.VendorHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Health   *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupCatalogRouter(e, h.Category, h.Product, authMiddleware)
	SetupVendorRouter(e, h.Vendor, authMiddleware)
	SetupOrderRouter(e, h.Order, authMiddleware)
	SetupReviewRouter(e, h.Review, authMiddleware)
	SetupHealthRouter(e, h.Health)
}
