package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
)

func SetupLocationRoutes(api *gin.RouterGroup, locationController *controllers.LocationController, authRequired gin.HandlerFunc) {
	locations := api.Group("/locations")
	locations.Use(authRequired)
	{
		locations.GET("", locationController.List)
		locations.POST("", locationController.Create)
		locations.POST("/nearby", locationController.Nearby)
		locations.GET("/:id", locationController.Get)
		locations.GET("/:id/distance", locationController.Distance)
		locations.PUT("/:id", locationController.Update)
		locations.DELETE("/:id", locationController.Delete)
	}
}
