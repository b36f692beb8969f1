package routes

import (
	"increa_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathReports = "/reports"

func addReportRoutes(rg *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reports := rg.Group(PathReports)
	{
		reports.GET("/billing", reportHandler.GetBillingReport)
		reports.GET("/departments", reportHandler.GetDepartmentAnalysis)
		reports.GET("/summary", reportHandler.GetSummary)
	}
}
