package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
	"github.com/ishala/illegal-waste-reporter-BE/middleware"
	"github.com/ishala/illegal-waste-reporter-BE/ratelimit"
)

func SetupAuthRoutes(api *gin.RouterGroup, authController *controllers.AuthController, authRequired gin.HandlerFunc, limiter ratelimit.Limiter) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimit(limiter, "register"), authController.Register)
		auth.POST("/login", middleware.RateLimit(limiter, "login"), authController.Login)
		auth.POST("/check-email", authController.CheckEmail)
		auth.POST("/refresh", authController.Refresh)
	}

	protected := auth.Group("")
	protected.Use(authRequired)
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/logout-all", authController.LogoutAll)
		protected.GET("/sessions", authController.Sessions)
		protected.DELETE("/sessions/:id", authController.RevokeSession)
	}
}
