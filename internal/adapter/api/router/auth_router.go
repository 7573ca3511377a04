package router

import (
	"github.com/labstack/echo/v4"

	"farmstand/internal/adapter/api/handler"
	"farmstand/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, h *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/verify-email", h.VerifyEmail)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)

	profile := e.Group("/api/v1/profile")
	profile.Use(authMiddleware.Authenticate)
	profile.GET("", h.GetProfile)
	profile.PATCH("", h.UpdateProfile)
}
