package handlers

import (
	"bytes"
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

func newProjectRouter(t *testing.T) (*gin.Engine, *mocks.MockIProjectUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIProjectUseCase(ctrl)
	h := NewProjectHandler(uc)

	r := gin.New()
	r.POST("/v1/projects", h.CreateProject)
	r.GET("/v1/projects", h.ListProjects)
	r.GET("/v1/projects/:id", h.GetProject)
	r.PATCH("/v1/projects/:id", h.UpdateProject)
	return r, uc
}

func sampleProject() entities.Project {
	p := entities.Project{
		ID:         "p-1",
		FileNumber: "EXP-001",
		Name:       "Nave logística",
		Department: entities.DepartmentIndustrial,
		Client:     "Acme",
		Status:     entities.ProjectStatusSent,
		IssueDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	p.SetBaseAmount(decimal.RequireFromString("1000"))
	return p
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	code, _ := body["code"].(string)
	return code
}

func TestProjectHandler_CreateProject(t *testing.T) {
	const valid = `{"file_number":"EXP-001","name":"Nave logística","department":"Industrial","client":"Acme","base_amount":1000,"status":"Enviada","issue_date":"2025-03-10"}`

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/projects", `{"name":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown department", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		body := `{"file_number":"E","name":"n","department":"Marketing","client":"c","base_amount":1,"issue_date":"2025-03-10"}`
		w := doJSON(r, http.MethodPost, "/v1/projects", body)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_DEPARTMENT" {
			t.Fatalf("expected 400 INVALID_DEPARTMENT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("usecase validation error", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Project{}, usecase.ErrInvalidAmount)

		w := doJSON(r, http.MethodPost, "/v1/projects", valid)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_AMOUNT" {
			t.Fatalf("expected 400 INVALID_AMOUNT, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("internal error", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Project{}, errors.New("db down"))

		w := doJSON(r, http.MethodPost, "/v1/projects", valid)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.ProjectInput) (entities.Project, error) {
			if in.Department != entities.DepartmentIndustrial || in.Status != entities.ProjectStatusSent {
				t.Fatalf("unexpected input: %+v", in)
			}
			if !in.BaseAmount.Equal(decimal.NewFromInt(1000)) {
				t.Fatalf("unexpected base amount: %s", in.BaseAmount)
			}
			return sampleProject(), nil
		})

		w := doJSON(r, http.MethodPost, "/v1/projects", valid)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "p-1" || body["total_amount"] != 1210.0 || body["department_label"] != "Industrial" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestProjectHandler_UpdateProject(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Update(gomock.Any(), "missing", gomock.Any()).Return(entities.Project{}, usecase.ErrProjectNotFound)

		w := doJSON(r, http.MethodPatch, "/v1/projects/missing", `{"notes":"x"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		w := doJSON(r, http.MethodPatch, "/v1/projects/p-1", `{"status":"cancelada"}`)
		if w.Code != http.StatusBadRequest || errorCode(t, w) != "INVALID_STATUS" {
			t.Fatalf("expected 400 INVALID_STATUS, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("clears payment date", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().Update(gomock.Any(), "p-1", gomock.Any()).DoAndReturn(func(_ any, _ string, patch usecase.ProjectPatch) (entities.Project, error) {
			if !patch.ClearPaymentDate || patch.Status == nil || *patch.Status != entities.ProjectStatusSent {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return sampleProject(), nil
		})

		w := doJSON(r, http.MethodPatch, "/v1/projects/p-1", `{"status":"sent","payment_date":""}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestProjectHandler_GetProject(t *testing.T) {
	r, uc := newProjectRouter(t)
	uc.EXPECT().GetByID(gomock.Any(), "p-1").Return(sampleProject(), nil)
	uc.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Project{}, usecase.ErrProjectNotFound)

	if w := doJSON(r, http.MethodGet, "/v1/projects/p-1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w := doJSON(r, http.MethodGet, "/v1/projects/nope", "")
	if w.Code != http.StatusNotFound || errorCode(t, w) != "PROJECT_NOT_FOUND" {
		t.Fatalf("expected 404 PROJECT_NOT_FOUND, got %d %s", w.Code, w.Body.String())
	}
}

func TestProjectHandler_ListProjects(t *testing.T) {
	t.Run("filters", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		want := usecase.ProjectFilter{Department: entities.DepartmentCivilWorks, Status: entities.ProjectStatusPaid, Year: 2025}
		uc.EXPECT().List(gomock.Any(), want).Return([]entities.Project{sampleProject()}, nil)

		w := doJSON(r, http.MethodGet, "/v1/projects?department=Obra%20Civil&status=pagada&year=2025", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 1 {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		r, uc := newProjectRouter(t)
		uc.EXPECT().List(gomock.Any(), usecase.ProjectFilter{}).Return(nil, nil)

		w := doJSON(r, http.MethodGet, "/v1/projects", "")
		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected empty array, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("bad query values", func(t *testing.T) {
		r, _ := newProjectRouter(t)
		for _, q := range []string{"department=marketing", "status=x", "year=abc"} {
			w := doJSON(r, http.MethodGet, "/v1/projects?"+q, "")
			if w.Code != http.StatusBadRequest {
				t.Fatalf("%s: expected 400, got %d", q, w.Code)
			}
		}
	})
}
