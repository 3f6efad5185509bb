package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
)

func SetupUserRoutes(api *gin.RouterGroup, userController *controllers.UserController, authRequired gin.HandlerFunc) {
	users := api.Group("/users")
	users.Use(authRequired)
	{
		users.GET("", userController.List)
		users.GET("/me", userController.Me)
		users.GET("/:id", userController.Get)
		users.PUT("/:id", userController.Update)
		users.DELETE("/:id", userController.Delete)
	}
}
