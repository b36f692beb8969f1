package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	request "increa_invoicing/internal/adapter/http/dto/request"
	response "increa_invoicing/internal/adapter/http/dto/response"
	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase"
	"increa_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidProjectPayload = pkg.NewDomainErrorSimple("INVALID_PROJECT_INPUT", "Invalid project payload", http.StatusBadRequest)

// ProjectHandler handles HTTP requests for registered projects.
type ProjectHandler struct {
	usecase usecase.IProjectUseCase
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc}
}

// CreateProject godoc
// @Summary      Register a project
// @Description  Stores an invoiced project; tax (21%) and total are computed from base_amount.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        project  body      request.ProjectRequest  true  "Project"
// @Success      201      {object}  response.ProjectResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var payload request.ProjectRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}

	project, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromProject(project))
}

// UpdateProject godoc
// @Summary      Edit a project
// @Description  Applies the given fields and recomputes tax and total.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Project ID"
// @Param        project  body      request.ProjectPatchRequest  true  "Fields to change"
// @Success      200      {object}  response.ProjectResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	var payload request.ProjectPatchRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	patch, err := payload.ToPatch()
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}

	project, err := h.usecase.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProject(project))
}

// GetProject godoc
// @Summary  Get a project
// @Tags     projects
// @Produce  json
// @Param    id   path      string  true  "Project ID"
// @Success  200  {object}  response.ProjectResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProject(project))
}

// ListProjects godoc
// @Summary  List registered projects
// @Tags     projects
// @Produce  json
// @Param    department  query     string  false  "Department code or label"
// @Param    status      query     string  false  "Status code or label"
// @Param    year        query     int     false  "Issue year"
// @Success  200         {array}   response.ProjectResponse
// @Failure  400         {object}  pkg.HTTPError
// @Router   /projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	var filter usecase.ProjectFilter
	if raw := strings.TrimSpace(c.Query("department")); raw != "" {
		d, ok := entities.ParseDepartment(raw)
		if !ok {
			writeError(c, mapProjectError(usecase.ErrInvalidDepartment))
			return
		}
		filter.Department = d
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		s, ok := entities.ParseProjectStatus(raw)
		if !ok {
			writeError(c, mapProjectError(usecase.ErrInvalidStatus))
			return
		}
		filter.Status = s
	}
	if raw := strings.TrimSpace(c.Query("year")); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			writeError(c, mapReportError(usecase.ErrInvalidYear))
			return
		}
		filter.Year = y
	}

	projects, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, mapProjectError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromProjects(projects))
}

func mapProjectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrInvalidFileNumber),
		errors.Is(err, usecase.ErrInvalidProjectName),
		errors.Is(err, usecase.ErrInvalidClient):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidDepartment):
		return pkg.NewDomainErrorSimple("INVALID_DEPARTMENT", "Department must be one of BIM, Obra Civil, Edificación, Industrial", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Status must be one of Pendiente de enviar, Enviada, Pagada", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "Base amount must be a non-negative value with at most two decimals", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidIssueDate):
		return pkg.NewDomainErrorSimple("INVALID_ISSUE_DATE", "Issue date is required (YYYY-MM-DD)", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentDate):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_DATE", "Payment date must be YYYY-MM-DD and not before the issue date", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
