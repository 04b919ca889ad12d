package reports

import (
	"seatflow/internal/shared/identity"
	"seatflow/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReportRoutes(rg *gin.RouterGroup, controller Controller, issuer *identity.TokenIssuer) {
	reports := rg.Group("/admin/events/:id/reports")
	reports.Use(middleware.JWTAuth(issuer))
	reports.Use(middleware.RequireAdmin())

	reports.GET("/occupied", controller.GetOccupiedList)       // ?session=session1
	reports.GET("/occupied.csv", controller.ExportOccupiedCSV) // attachment download
	reports.GET("/summary", controller.GetSummary)
}
