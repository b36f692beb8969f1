package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	request "increa_invoicing/internal/adapter/http/dto/request"
	response "increa_invoicing/internal/adapter/http/dto/response"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/usecase"
	"increa_invoicing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidSettlementPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// SettlementHandler handles invoice payments.
type SettlementHandler struct {
	usecase usecase.ISettlementUseCase
}

func NewSettlementHandler(uc usecase.ISettlementUseCase) *SettlementHandler {
	return &SettlementHandler{usecase: uc}
}

// SettleProject godoc
// @Summary      Charge a sent invoice
// @Description  Charges the project total through Mercado Pago. An approved payment marks the project as paid.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Project ID"
// @Param        payment  body      request.SettlementRequest  false  "Mercado Pago payment body, bare or wrapped in mp_payload"
// @Success      201      {object}  response.PaymentResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Router       /projects/{id}/payments [post]
func (h *SettlementHandler) SettleProject(c *gin.Context) {
	projectID := c.Param("id")
	log := logger.FromContext(c.Request.Context(), "http")

	payload, err := readMPPayload(c)
	if err != nil {
		log.Warn().Err(err).Str("project_id", projectID).Msg("invalid settlement payload")
		writeError(c, errInvalidSettlementPayload)
		return
	}

	created, err := h.usecase.Settle(c.Request.Context(), projectID, payload)
	if err != nil {
		writeError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromPayment(created))
}

// ListProjectPayments godoc
// @Summary  List the payments of a project
// @Tags     payments
// @Produce  json
// @Param    id   path     string  true  "Project ID"
// @Success  200  {array}  response.PaymentResponse
// @Router   /projects/{id}/payments [get]
func (h *SettlementHandler) ListProjectPayments(c *gin.Context) {
	payments, err := h.usecase.ListByProjectID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// GetPayment godoc
// @Summary  Get a payment
// @Tags     payments
// @Produce  json
// @Param    id   path      string  true  "Payment ID"
// @Success  200  {object}  response.PaymentResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /payments/{id} [get]
func (h *SettlementHandler) GetPayment(c *gin.Context) {
	payment, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}

// readMPPayload returns the payment body, unwrapping mp_payload when present.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	return request.ParseSettlementBody(raw)
}

func mapSettlementError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProjectID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidPaymentPayload),
		errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "Project not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProjectNotSent):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_SENT", "Only sent invoices can be settled", http.StatusConflict)
	case errors.Is(err, usecase.ErrProjectAlreadyPaid):
		return pkg.NewDomainErrorSimple("PROJECT_ALREADY_PAID", "Project already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
