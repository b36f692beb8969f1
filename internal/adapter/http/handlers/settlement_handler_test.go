package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"increa_invoicing/internal/adapter/http/handlers/mocks"
	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

func newSettlementRouter(t *testing.T) (*gin.Engine, *mocks.MockISettlementUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockISettlementUseCase(ctrl)
	h := NewSettlementHandler(uc)

	r := gin.New()
	r.POST("/v1/projects/:id/payments", h.SettleProject)
	r.GET("/v1/projects/:id/payments", h.ListProjectPayments)
	r.GET("/v1/payments/:id", h.GetPayment)
	return r, uc
}

func approvedPayment() entities.Payment {
	return entities.Payment{
		ID:        "pay-1",
		ProjectID: "p-1",
		Amount:    decimal.RequireFromString("1210"),
		Date:      time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
		Status:    entities.PaymentStatusApproved,
	}
}

func TestSettlementHandler_SettleProject(t *testing.T) {
	t.Run("invalid payload", func(t *testing.T) {
		r, _ := newSettlementRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("null envelope", func(t *testing.T) {
		r, _ := newSettlementRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", `{"mp_payload":null}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("body read error", func(t *testing.T) {
		r, _ := newSettlementRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/projects/p-1/payments", nil)
		req.Body = failingReadCloser{}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty body becomes empty object", func(t *testing.T) {
		r, uc := newSettlementRouter(t)
		uc.EXPECT().Settle(gomock.Any(), "p-1", json.RawMessage("{}")).Return(approvedPayment(), nil)

		w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("envelope is unwrapped", func(t *testing.T) {
		r, uc := newSettlementRouter(t)
		uc.EXPECT().Settle(gomock.Any(), "p-1", gomock.Any()).DoAndReturn(func(_ any, _ string, payload json.RawMessage) (entities.Payment, error) {
			var m map[string]any
			if err := json.Unmarshal(payload, &m); err != nil || m["payment_method_id"] != "pix" {
				t.Fatalf("unexpected payload: %s", payload)
			}
			return approvedPayment(), nil
		})

		w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", `{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["status"] != "approved" || body["amount"] != 1210.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("bare body is passed through", func(t *testing.T) {
		r, uc := newSettlementRouter(t)
		bare := `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`
		uc.EXPECT().Settle(gomock.Any(), "p-1", json.RawMessage(bare)).Return(approvedPayment(), nil)

		if w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", bare); w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	mapped := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"not sent", usecase.ErrProjectNotSent, http.StatusConflict, "PROJECT_NOT_SENT"},
		{"already paid", usecase.ErrProjectAlreadyPaid, http.StatusConflict, "PROJECT_ALREADY_PAID"},
		{"project not found", usecase.ErrProjectNotFound, http.StatusNotFound, "PROJECT_NOT_FOUND"},
		{"bad payload", usecase.ErrInvalidPaymentPayload, http.StatusBadRequest, "INVALID_REQUEST"},
		{"provider rejects request", usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{"provider customer", usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest, "PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND"},
		{"provider users", usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest, "PAYMENT_PROVIDER_INVALID_USERS"},
		{"provider unauthorized", usecase.ErrPaymentGatewayUnauthorized, http.StatusBadGateway, "PAYMENT_PROVIDER_UNAUTHORIZED"},
		{"provider not configured", usecase.ErrPaymentGatewayNotConfigured, http.StatusServiceUnavailable, "PAYMENT_PROVIDER_UNAVAILABLE"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range mapped {
		t.Run(tc.name, func(t *testing.T) {
			r, uc := newSettlementRouter(t)
			uc.EXPECT().Settle(gomock.Any(), "p-1", gomock.Any()).Return(entities.Payment{}, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/projects/p-1/payments", `{}`)
			if w.Code != tc.code || errorCode(t, w) != tc.body {
				t.Fatalf("expected %d %s, got %d %s", tc.code, tc.body, w.Code, w.Body.String())
			}
		})
	}
}

func TestSettlementHandler_ListProjectPayments(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		r, uc := newSettlementRouter(t)
		uc.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return(nil, usecase.ErrInvalidProjectID)

		if w := doJSON(r, http.MethodGet, "/v1/projects/p-1/payments", ""); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newSettlementRouter(t)
		uc.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return([]entities.Payment{approvedPayment()}, nil)

		w := doJSON(r, http.MethodGet, "/v1/projects/p-1/payments", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 || body[0]["project_id"] != "p-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestSettlementHandler_GetPayment(t *testing.T) {
	r, uc := newSettlementRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Payment{}, usecase.ErrPaymentNotFound)
	uc.EXPECT().GetByID(gomock.Any(), "pay-1").Return(approvedPayment(), nil)

	w := doJSON(r, http.MethodGet, "/v1/payments/missing", "")
	if w.Code != http.StatusNotFound || errorCode(t, w) != "PAYMENT_NOT_FOUND" {
		t.Fatalf("expected 404 PAYMENT_NOT_FOUND, got %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodGet, "/v1/payments/pay-1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
