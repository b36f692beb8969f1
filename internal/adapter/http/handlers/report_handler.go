package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	response "increa_invoicing/internal/adapter/http/dto/response"
	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase"
	"increa_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard reports.
type ReportHandler struct {
	usecase usecase.IReportUseCase
}

func NewReportHandler(uc usecase.IReportUseCase) *ReportHandler {
	return &ReportHandler{usecase: uc}
}

// GetBillingReport godoc
// @Summary      Billing by period or department
// @Description  Groups project totals by day, week, month, year or department. Monthly rows always cover the twelve months of year.
// @Tags         reports
// @Produce      json
// @Param        mode  query     string  false  "daily, weekly, monthly, annual or department (default monthly)"
// @Param        year  query     int     false  "Year for the monthly mode (default current year)"
// @Success      200   {object}  response.BillingReportResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /reports/billing [get]
func (h *ReportHandler) GetBillingReport(c *gin.Context) {
	mode := entities.GroupingMonthly
	if raw := strings.TrimSpace(c.Query("mode")); raw != "" {
		m, ok := entities.ParseGroupingMode(raw)
		if !ok {
			writeError(c, mapReportError(usecase.ErrInvalidGroupingMode))
			return
		}
		mode = m
	}

	year := 0
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, mapReportError(usecase.ErrInvalidYear))
			return
		}
		year = y
	}
	if year == 0 && mode == entities.GroupingMonthly {
		year = time.Now().UTC().Year()
	}

	rows, err := h.usecase.Aggregate(c.Request.Context(), mode, year)
	if err != nil {
		writeError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAggregate(mode, year, rows))
}

// GetDepartmentAnalysis godoc
// @Summary  Profitability per department
// @Tags     reports
// @Produce  json
// @Success  200  {array}  response.DepartmentAnalysisResponse
// @Router   /reports/departments [get]
func (h *ReportHandler) GetDepartmentAnalysis(c *gin.Context) {
	analysis, err := h.usecase.AnalyzeDepartments(c.Request.Context())
	if err != nil {
		writeError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDepartmentAnalysis(analysis))
}

// GetSummary godoc
// @Summary  Billing totals over every project
// @Tags     reports
// @Produce  json
// @Success  200  {object}  response.SummaryResponse
// @Router   /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	summary, err := h.usecase.Summary(c.Request.Context())
	if err != nil {
		writeError(c, mapReportError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSummary(summary))
}

func mapReportError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidGroupingMode):
		return pkg.NewDomainErrorSimple("INVALID_MODE", "Mode must be one of daily, weekly, monthly, annual, department", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidYear):
		return pkg.NewDomainErrorSimple("INVALID_YEAR", "Year must be between 1900 and 9999", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
