package routes

import (
	"increa_invoicing/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathProjects = "/projects"
	PathPayments = "/payments"
)

func addProjectRoutes(rg *gin.RouterGroup, projectHandler *handlers.ProjectHandler, settlementHandler *handlers.SettlementHandler) {
	projects := rg.Group(PathProjects)
	{
		projects.POST("", projectHandler.CreateProject)
		projects.GET("", projectHandler.ListProjects)
		projects.GET("/:id", projectHandler.GetProject)
		projects.PATCH("/:id", projectHandler.UpdateProject)

		projects.POST("/:id/payments", settlementHandler.SettleProject)
		projects.GET("/:id/payments", settlementHandler.ListProjectPayments)
	}

	payments := rg.Group(PathPayments)
	{
		payments.GET("/:id", settlementHandler.GetPayment)
	}
}
