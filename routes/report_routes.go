package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/controllers"
)

func SetupReportRoutes(api *gin.RouterGroup, reportController *controllers.ReportController, authRequired gin.HandlerFunc) {
	reports := api.Group("/reports")
	reports.Use(authRequired)
	{
		reports.POST("", reportController.Create)
		reports.GET("", reportController.List)
		reports.GET("/me", reportController.Mine)
		reports.GET("/:id", reportController.Get)
		reports.PUT("/:id", reportController.Update)
		reports.DELETE("/:id", reportController.Delete)
	}

	api.GET("/report-statuses", reportController.Statuses)
}
