package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
)

func SetupMediaRoutes(api *gin.RouterGroup, mediaController *controllers.MediaController, authRequired gin.HandlerFunc) {
	media := api.Group("/media")
	media.Use(authRequired)
	{
		media.POST("/:report_id", mediaController.Upload)
		media.GET("/:report_id", mediaController.List)
		media.GET("/:report_id/:media_id/url", mediaController.URL)
		media.DELETE("/:report_id/:media_id", mediaController.Delete)
	}
}
