package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"increa_invoicing/internal/adapter/http/handlers/mocks"
	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newReportRouter(t *testing.T) (*gin.Engine, *mocks.MockIReportUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIReportUseCase(ctrl)
	h := NewReportHandler(uc)

	r := gin.New()
	r.GET("/v1/reports/billing", h.GetBillingReport)
	r.GET("/v1/reports/departments", h.GetDepartmentAnalysis)
	r.GET("/v1/reports/summary", h.GetSummary)
	return r, uc
}

func TestReportHandler_GetBillingReport(t *testing.T) {
	t.Run("defaults to monthly of current year", func(t *testing.T) {
		r, uc := newReportRouter(t)
		year := time.Now().UTC().Year()
		rows := []entities.AggregateRow{{Key: "2025-01", Label: "Ene", Paid: decimal.NewFromInt(5), Total: decimal.NewFromInt(5)}}
		uc.EXPECT().Aggregate(gomock.Any(), entities.GroupingMonthly, year).Return(rows, nil)

		w := doJSON(r, http.MethodGet, "/v1/reports/billing", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Mode string           `json:"mode"`
			Year int              `json:"year"`
			Rows []map[string]any `json:"rows"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Mode != "monthly" || body.Year != year || len(body.Rows) != 1 || body.Rows[0]["pagada"] != 5.0 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("year comes from the request, not the row keys", func(t *testing.T) {
		r, uc := newReportRouter(t)
		rows := []entities.AggregateRow{{Key: "x", Label: "?"}}
		uc.EXPECT().Aggregate(gomock.Any(), entities.GroupingMonthly, 2023).Return(rows, nil)

		w := doJSON(r, http.MethodGet, "/v1/reports/billing?year=2023", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body struct {
			Year int `json:"year"`
		}
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body.Year != 2023 {
			t.Fatalf("expected year 2023, got %s", w.Body.String())
		}
	})

	t.Run("dashboard mode name", func(t *testing.T) {
		r, uc := newReportRouter(t)
		uc.EXPECT().Aggregate(gomock.Any(), entities.GroupingWeekly, 0).Return(nil, nil)

		w := doJSON(r, http.MethodGet, "/v1/reports/billing?mode=semana", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if _, ok := body["year"]; ok {
			t.Fatalf("year only belongs to monthly reports: %s", w.Body.String())
		}
	})

	t.Run("explicit year", func(t *testing.T) {
		r, uc := newReportRouter(t)
		uc.EXPECT().Aggregate(gomock.Any(), entities.GroupingMonthly, 2024).Return(nil, nil)

		if w := doJSON(r, http.MethodGet, "/v1/reports/billing?mode=monthly&year=2024", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		r, _ := newReportRouter(t)
		w := doJSON(r, http.MethodGet, "/v1/reports/billing?mode=hourly", "")
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_MODE" {
			t.Fatalf("expected 400 INVALID_MODE, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		r, uc := newReportRouter(t)
		w := doJSON(r, http.MethodGet, "/v1/reports/billing?year=abc", "")
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_YEAR" {
			t.Fatalf("expected 400 INVALID_YEAR, got %d", w.Code)
		}

		uc.EXPECT().Aggregate(gomock.Any(), entities.GroupingMonthly, 12).Return(nil, usecase.ErrInvalidYear)
		w = doJSON(r, http.MethodGet, "/v1/reports/billing?year=12", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestReportHandler_GetDepartmentAnalysis(t *testing.T) {
	r, uc := newReportRouter(t)
	uc.EXPECT().AnalyzeDepartments(gomock.Any()).Return([]entities.DepartmentAnalysis{{
		Department:    entities.DepartmentBIM,
		Projects:      3,
		Billed:        decimal.NewFromInt(600),
		Paid:          decimal.NewFromInt(100),
		Outstanding:   decimal.NewFromInt(500),
		Profitability: 16.67,
	}}, nil)

	w := doJSON(r, http.MethodGet, "/v1/reports/departments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body) != 1 || body[0]["departamento"] != "bim" || body[0]["rentabilidad"] != 16.67 || body[0]["pendiente_cobro"] != 500.0 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_GetSummary(t *testing.T) {
	r, uc := newReportRouter(t)
	uc.EXPECT().Summary(gomock.Any()).Return(entities.BillingSummary{}, errors.New("boom"))

	if w := doJSON(r, http.MethodGet, "/v1/reports/summary", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	uc.EXPECT().Summary(gomock.Any()).Return(entities.BillingSummary{Projects: 2, Billed: decimal.NewFromInt(10)}, nil)
	w := doJSON(r, http.MethodGet, "/v1/reports/summary", "")
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body["proyectos"] != 2.0 || body["facturado"] != 10.0 {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}
