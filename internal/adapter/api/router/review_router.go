package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, h *handler.ReviewHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/api/v1/products/:id/reviews", h.ListProductReviews)

	authed := e.Group("/api/v1")
	authed.Use(authMiddleware.Authenticate)
	authed.POST("/products/:id/reviews", h.CreateReview)
	authed.GET("/my-reviews", h.ListMyReviews)
	authed.PATCH("/reviews/:reviewId", h.UpdateReview)
	authed.DELETE("/reviews/:reviewId", h.DeleteReview)
}
