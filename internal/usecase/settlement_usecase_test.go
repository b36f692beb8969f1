package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"increa_invoicing/internal/adapter/persistence/repository"
	"increa_invoicing/internal/domain/entities"
	mock_interfaces "increa_invoicing/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type settlementMocks struct {
	payments *mock_interfaces.MockIPaymentRepository
	projects *mock_interfaces.MockIProjectRepository
	gateway  *mock_interfaces.MockIPaymentGateway
	metrics  *mock_interfaces.MockIBillingMetrics
}

func newSettlementUseCase(t *testing.T, cfg SettlementConfig) (*SettlementUseCase, settlementMocks) {
	ctrl := gomock.NewController(t)
	m := settlementMocks{
		payments: mock_interfaces.NewMockIPaymentRepository(ctrl),
		projects: mock_interfaces.NewMockIProjectRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
		metrics:  mock_interfaces.NewMockIBillingMetrics(ctrl),
	}
	uc := NewSettlementUseCase(m.payments, m.projects, m.gateway, m.metrics, cfg)
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func sentProject() entities.Project {
	p := storedProject()
	p.Status = entities.ProjectStatusSent
	return p
}

const validPayload = `{"payment_method_id":"visa","payer":{"email":"buyer@example.com"}}`

func TestSettlementUseCase_Settle_Validations(t *testing.T) {
	t.Run("empty project id", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		_, err := uc.Settle(context.Background(), " ", json.RawMessage(validPayload))
		if !errors.Is(err, ErrInvalidProjectID) {
			t.Fatalf("expected ErrInvalidProjectID, got %v", err)
		}
	})

	t.Run("empty payload", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		_, err := uc.Settle(context.Background(), "p-1", nil)
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("invalid json payload", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(`{`))
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
		if !errors.Is(err, ErrPaymentGatewayNotConfigured) {
			t.Fatalf("expected ErrPaymentGatewayNotConfigured, got %v", err)
		}
	})

	t.Run("missing payment method", func(t *testing.T) {
		uc, m := newSettlementUseCase(t, SettlementConfig{})
		m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)

		_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(`{"payer":{"email":"a@b.c"}}`))
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("missing payer without sandbox defaults", func(t *testing.T) {
		uc, m := newSettlementUseCase(t, SettlementConfig{})
		m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)

		_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(`{"payment_method_id":"visa"}`))
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})
}

func TestSettlementUseCase_Settle_ProjectChecks(t *testing.T) {
	cases := []struct {
		name    string
		project entities.Project
		err     error
		want    error
	}{
		{"repository error", entities.Project{}, errors.New("db"), nil},
		{"not found", entities.Project{}, nil, ErrProjectNotFound},
		{"pending", storedProject(), nil, ErrProjectNotSent},
		{"already paid", func() entities.Project { p := storedProject(); p.Status = entities.ProjectStatusPaid; return p }(), nil, ErrProjectAlreadyPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newSettlementUseCase(t, SettlementConfig{})
			m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(tc.project, tc.err)

			_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
			if tc.want == nil {
				if err == nil || err.Error() != "db" {
					t.Fatalf("expected db error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSettlementUseCase_Settle_Approved(t *testing.T) {
	uc, m := newSettlementUseCase(t, SettlementConfig{})
	m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)
	m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return(nil, nil)

	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
		var req map[string]any
		if err := json.Unmarshal(payload, &req); err != nil {
			t.Fatalf("gateway received invalid json: %v", err)
		}
		if req["transaction_amount"] != 1210.0 {
			t.Fatalf("expected project total as amount, got %v", req["transaction_amount"])
		}
		if req["external_reference"] != "p-1" || req["description"] != "Factura EXP-001" {
			t.Fatalf("unexpected enrichment %v", req)
		}
		return "mp-1", "approved", json.RawMessage(`{"id":"mp-1","status":"approved"}`), nil
	})
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		return p, nil
	})
	m.projects.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Project) (entities.Project, error) {
		if p.Status != entities.ProjectStatusPaid {
			t.Fatalf("expected project marked paid, got %s", p.Status)
		}
		if p.PaymentDate == nil || entities.FormatDate(*p.PaymentDate) != "2025-06-15" {
			t.Fatalf("unexpected payment date %v", p.PaymentDate)
		}
		return p, nil
	})
	m.metrics.EXPECT().RecordSettlement(gomock.Any(), "approved")

	got, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "mp-1" || got.Status != entities.PaymentStatusApproved || got.Amount.StringFixed(2) != "1210.00" {
		t.Fatalf("unexpected payment %+v", got)
	}
	if got.ProviderPayload["status"] != "approved" {
		t.Fatalf("expected parsed provider payload, got %v", got.ProviderPayload)
	}
}

func TestSettlementUseCase_Settle_PendingKeepsProjectSent(t *testing.T) {
	uc, m := newSettlementUseCase(t, SettlementConfig{})
	m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)
	m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return(nil, nil)
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "in_process", nil, nil)
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		return p, nil
	})
	m.metrics.EXPECT().RecordSettlement(gomock.Any(), "pending")

	got, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" || got.Status != entities.PaymentStatusPending {
		t.Fatalf("unexpected payment %+v", got)
	}
}

func TestSettlementUseCase_Settle_GatewayErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"bad request", errors.New(`{"error":"bad_request","status":400}`), ErrPaymentGatewayBadRequest},
		{"unauthorized", errors.New(`{"error":"unauthorized","status":401}`), ErrPaymentGatewayUnauthorized},
		{"invalid users", errors.New(`Invalid users involved`), ErrPaymentGatewayInvalidUsers},
		{"customer not found", errors.New(`{"code":2002}`), ErrPaymentGatewayCustomerNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, m := newSettlementUseCase(t, SettlementConfig{})
			m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)
			m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return(nil, nil)
			m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, tc.err)

			_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSettlementUseCase_Settle_MockMode(t *testing.T) {
	uc, m := newSettlementUseCase(t, SettlementConfig{MockMode: true})
	m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil)
	m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return(nil, nil)
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		return p, nil
	})
	m.projects.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Project) (entities.Project, error) {
		return p, nil
	})
	m.metrics.EXPECT().RecordSettlement(gomock.Any(), "approved")

	got, err := uc.Settle(context.Background(), "p-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != entities.PaymentStatusApproved || got.ProviderPayload["external_reference"] != "p-1" {
		t.Fatalf("unexpected payment %+v", got)
	}
}

func TestSettlementUseCase_Settle_RetryAfterFailedUpdateDoesNotChargeAgain(t *testing.T) {
	uc, m := newSettlementUseCase(t, SettlementConfig{})
	m.projects.EXPECT().GetByID(gomock.Any(), "p-1").Return(sentProject(), nil).Times(2)

	var stored []entities.Payment
	m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").DoAndReturn(func(context.Context, string) ([]entities.Payment, error) {
		return stored, nil
	}).Times(2)
	m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "approved", json.RawMessage(`{"id":"mp-1"}`), nil).Times(1)
	m.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Payment) (entities.Payment, error) {
		stored = append(stored, p)
		return p, nil
	})

	gomock.InOrder(
		m.projects.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Project{}, errors.New("throttled")),
		m.projects.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p entities.Project) (entities.Project, error) {
			if p.Status != entities.ProjectStatusPaid || p.PaymentDate == nil {
				t.Fatalf("expected project marked paid, got %+v", p)
			}
			return p, nil
		}),
	)

	if _, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload)); err == nil {
		t.Fatalf("expected update error on first attempt")
	}

	got, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
	if err != nil {
		t.Fatalf("unexpected error on retry: %v", err)
	}
	if got.ID != "mp-1" || got.Status != entities.PaymentStatusApproved {
		t.Fatalf("expected the stored payment back, got %+v", got)
	}
}

func TestSettlementUseCase_Settle_ConcurrentCallsChargeOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "approved", nil, nil).Times(1)

	projects := repository.NewProjectMemoryRepository()
	payments := repository.NewPaymentMemoryRepository()
	if _, err := projects.Create(context.Background(), sentProject()); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	uc := NewSettlementUseCase(payments, projects, gateway, nil, SettlementConfig{})

	const callers = 8
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Settle(context.Background(), "p-1", json.RawMessage(validPayload))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case !errors.Is(err, ErrProjectAlreadyPaid):
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one successful settlement, got %d", succeeded)
	}
	stored, _ := payments.ListByProjectID(context.Background(), "p-1")
	if len(stored) != 1 {
		t.Fatalf("expected one stored payment, got %d", len(stored))
	}
}

func TestSettlementUseCase_SandboxPayer(t *testing.T) {
	uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{
		SandboxToken:    true,
		TestPayerEmail:  "sandbox@testuser.com",
		TestPayerUserID: "123",
	})

	req := map[string]any{"payer": map[string]any{"id": "123"}}
	uc.normalizeSandboxPayer(req)
	payer := req["payer"].(map[string]any)
	if payer["email"] != "sandbox@testuser.com" || payer["id"] != nil {
		t.Fatalf("expected id swapped for email, got %v", payer)
	}

	req = map[string]any{}
	uc.ensurePayerDefaults(req)
	if !hasPayer(req) {
		t.Fatalf("expected default sandbox payer, got %v", req)
	}
}

func TestSettlementUseCase_GetAndList(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		uc, m := newSettlementUseCase(t, SettlementConfig{})
		m.payments.EXPECT().GetByID(gomock.Any(), "x").Return(entities.Payment{}, nil)
		if _, err := uc.GetByID(context.Background(), "x"); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("expected ErrPaymentNotFound, got %v", err)
		}
	})

	t.Run("get empty id", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		if _, err := uc.GetByID(context.Background(), ""); !errors.Is(err, ErrInvalidPaymentID) {
			t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		uc, m := newSettlementUseCase(t, SettlementConfig{})
		m.payments.EXPECT().ListByProjectID(gomock.Any(), "p-1").Return([]entities.Payment{{ID: "a"}}, nil)
		got, err := uc.ListByProjectID(context.Background(), " p-1 ")
		if err != nil || len(got) != 1 {
			t.Fatalf("unexpected result %v err=%v", got, err)
		}
	})

	t.Run("list empty id", func(t *testing.T) {
		uc := NewSettlementUseCase(nil, nil, nil, nil, SettlementConfig{})
		if _, err := uc.ListByProjectID(context.Background(), ""); !errors.Is(err, ErrInvalidProjectID) {
			t.Fatalf("expected ErrInvalidProjectID, got %v", err)
		}
	})
}
