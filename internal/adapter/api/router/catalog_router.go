package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

func SetupCatalogRouter(e *echo.Echo, categories *handler.CategoryHandler, products *handler.ProductHandler, authMiddleware *middleware.AuthMiddleware) {
	// Browsing is public.
	categoryGroup := e.Group("/api/v1/categories")
	categoryGroup.GET("", categories.ListCategories)
	categoryGroup.GET("/:id", categories.GetCategory)

	productGroup := e.Group("/api/v1/products")
	productGroup.GET("", products.ListProducts)
	productGroup.GET("/search", products.SearchProducts)
	productGroup.GET("/:id", products.GetProduct)

	// Catalog management needs a signed-in user; product ownership is
	// enforced in the usecase.
	categoryAdmin := e.Group("/api/v1/categories")
	categoryAdmin.Use(authMiddleware.Authenticate)
	categoryAdmin.POST("", categories.CreateCategory)
	categoryAdmin.PATCH("/:id", categories.UpdateCategory)
	categoryAdmin.DELETE("/:id", categories.DeleteCategory)

	productAdmin := e.Group("/api/v1/products")
	productAdmin.Use(authMiddleware.Authenticate)
	productAdmin.POST("", products.CreateProduct)
	productAdmin.PATCH("/:id", products.UpdateProduct)
	productAdmin.DELETE("/:id", products.DeleteProduct)
}
