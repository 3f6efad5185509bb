package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
	"github.com/ishala/illegal-waste-reporter-BE/middleware"
)

func SetupVerificationRoutes(api *gin.RouterGroup, verificationController *controllers.VerificationController, authRequired gin.HandlerFunc) {
	verifications := api.Group("/verifications")
	verifications.Use(authRequired, middleware.RequireAdmin())
	{
		verifications.GET("", verificationController.List)
		verifications.POST("", verificationController.Create)
		verifications.GET("/:id", verificationController.Get)
		verifications.PUT("/:id", verificationController.Update)
		verifications.DELETE("/:id", verificationController.Delete)
	}
}
