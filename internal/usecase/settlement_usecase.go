package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"increa_invoicing/internal/domain/entities"
	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPaymentNotFound                = errors.New("payment not found")
	ErrInvalidPaymentID               = errors.New("invalid payment id")
	ErrInvalidPaymentPayload          = errors.New("invalid payment payload")
	ErrProjectNotSent                 = errors.New("project invoice not sent")
	ErrProjectAlreadyPaid             = errors.New("project already paid")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// SettlementConfig tunes how invoices are charged.
type SettlementConfig struct {
	// MockMode approves every charge locally without calling the gateway.
	MockMode bool
	// SandboxToken is true when the gateway runs with a TEST- access token.
	SandboxToken    bool
	TestPayerEmail  string
	TestPayerUserID string
}

// ISettlementUseCase charges sent invoices and records their payments.
type ISettlementUseCase interface {
	Settle(ctx context.Context, projectID string, payload json.RawMessage) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.Payment, error)
}

type SettlementUseCase struct {
	payments interfaces.IPaymentRepository
	projects interfaces.IProjectRepository
	gateway  interfaces.IPaymentGateway
	metrics  interfaces.IBillingMetrics
	cfg      SettlementConfig
	now      func() time.Time
	locks    projectLocks
}

var _ ISettlementUseCase = (*SettlementUseCase)(nil)

func NewSettlementUseCase(payments interfaces.IPaymentRepository, projects interfaces.IProjectRepository, gateway interfaces.IPaymentGateway, metrics interfaces.IBillingMetrics, cfg SettlementConfig) *SettlementUseCase {
	return &SettlementUseCase{
		payments: payments,
		projects: projects,
		gateway:  gateway,
		metrics:  metrics,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Settle charges the total of a sent project. An approved charge marks the
// project as paid on the payment day.
func (u *SettlementUseCase) Settle(ctx context.Context, projectID string, payload json.RawMessage) (entities.Payment, error) {
	log := logger.FromContext(ctx, "settlement")
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return entities.Payment{}, ErrInvalidProjectID
	}
	log = log.With().Str("project_id", projectID).Logger()

	if len(payload) == 0 || !json.Valid(payload) {
		if !u.cfg.MockMode {
			log.Warn().Int("payload_len", len(payload)).Msg("invalid payment payload")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		payload = json.RawMessage("{}")
	}
	if !u.cfg.MockMode && u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	unlock := u.locks.lock(projectID)
	defer unlock()

	project, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("failed loading project")
		return entities.Payment{}, err
	}
	switch {
	case project.ID == "":
		return entities.Payment{}, ErrProjectNotFound
	case project.Status == entities.ProjectStatusPaid:
		return entities.Payment{}, ErrProjectAlreadyPaid
	case project.Status != entities.ProjectStatusSent:
		return entities.Payment{}, ErrProjectNotSent
	}

	reqMap := map[string]any{}
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		if !u.cfg.MockMode {
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		reqMap = map[string]any{}
	}
	if !u.cfg.MockMode {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			log.Warn().Msg("missing payment_method_id")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			log.Warn().Msg("missing or invalid payer")
			return entities.Payment{}, ErrInvalidPaymentPayload
		}
	}
	// A previous attempt may have been charged without the project being
	// marked paid. Finish that transition instead of charging again.
	prior, err := u.approvedPayment(ctx, projectID)
	if err != nil {
		log.Error().Err(err).Msg("failed listing project payments")
		return entities.Payment{}, err
	}
	if prior.ID != "" {
		log.Warn().Str("payment_id", prior.ID).Msg("project already charged; completing paid transition")
		if err := u.markPaid(ctx, project, prior.Date); err != nil {
			log.Error().Err(err).Str("payment_id", prior.ID).Msg("failed marking project as paid")
			return entities.Payment{}, err
		}
		return prior, nil
	}

	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = projectID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Factura %s", project.FileNumber)
	}
	// The stored total is the amount due, whatever the caller sent.
	reqMap["transaction_amount"] = project.TotalAmount.InexactFloat64()
	payload, err = json.Marshal(reqMap)
	if err != nil {
		return entities.Payment{}, err
	}

	var (
		providerID     string
		providerStatus string
		providerResp   json.RawMessage
	)
	if u.cfg.MockMode {
		log.Info().Msg("mock mode enabled; skipping payment gateway")
		providerID, providerStatus, providerResp, err = u.mockCharge(reqMap)
	} else {
		providerID, providerStatus, providerResp, err = u.gateway.CreatePayment(ctx, payload)
		err = classifyGatewayError(err)
	}
	if err != nil {
		log.Error().Err(err).Msg("payment gateway failed")
		return entities.Payment{}, err
	}

	var parsed map[string]any
	if len(providerResp) > 0 {
		if err := json.Unmarshal(providerResp, &parsed); err != nil {
			log.Warn().Err(err).Msg("provider response is not an object")
		}
	}
	if strings.TrimSpace(providerID) == "" {
		providerID = uuid.NewString()
	}

	now := u.now()
	payment := entities.Payment{
		ID:                 providerID,
		ProjectID:          projectID,
		Amount:             project.TotalAmount,
		Date:               now,
		Status:             paymentStatusFromProvider(providerStatus),
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}
	created, err := u.payments.Create(ctx, payment)
	if err != nil {
		log.Error().Err(err).Str("payment_id", payment.ID).Msg("payment repository create failed")
		return entities.Payment{}, err
	}

	if created.Status == entities.PaymentStatusApproved {
		if err := u.markPaid(ctx, project, now); err != nil {
			log.Error().Err(err).Str("payment_id", created.ID).Msg("failed marking project as paid")
			return entities.Payment{}, err
		}
	}

	log.Info().Str("payment_id", created.ID).Str("status", string(created.Status)).
		Str("amount", created.Amount.StringFixed(2)).Msg("settlement recorded")
	if u.metrics != nil {
		u.metrics.RecordSettlement(ctx, string(created.Status))
	}
	return created, nil
}

// approvedPayment returns the approved payment stored for the project, if any.
func (u *SettlementUseCase) approvedPayment(ctx context.Context, projectID string) (entities.Payment, error) {
	payments, err := u.payments.ListByProjectID(ctx, projectID)
	if err != nil {
		return entities.Payment{}, err
	}
	for _, p := range payments {
		if p.Status == entities.PaymentStatusApproved {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

// markPaid moves the project to paid on the day of paidAt, never before its
// issue date.
func (u *SettlementUseCase) markPaid(ctx context.Context, project entities.Project, paidAt time.Time) error {
	paidOn := time.Date(paidAt.Year(), paidAt.Month(), paidAt.Day(), 0, 0, 0, 0, time.UTC)
	if paidOn.Before(project.IssueDate) {
		paidOn = project.IssueDate
	}
	project.Status = entities.ProjectStatusPaid
	project.PaymentDate = &paidOn
	project.UpdatedAt = u.now()
	updated, err := u.projects.Update(ctx, project)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return ErrProjectNotFound
	}
	return nil
}

func (u *SettlementUseCase) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}

	p, err := u.payments.GetByID(ctx, id)
	if err != nil {
		return entities.Payment{}, err
	}
	if p.ID == "" {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}

func (u *SettlementUseCase) ListByProjectID(ctx context.Context, projectID string) ([]entities.Payment, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrInvalidProjectID
	}
	return u.payments.ListByProjectID(ctx, projectID)
}

func (u *SettlementUseCase) mockCharge(req map[string]any) (string, string, json.RawMessage, error) {
	id := strconv.FormatInt(u.now().UnixNano(), 10)
	stamp := u.now().Format(time.RFC3339Nano)

	resp := make(map[string]any, len(req)+5)
	for k, v := range req {
		resp[k] = v
	}
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"
	resp["date_created"] = stamp
	resp["date_approved"] = stamp

	b, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	return id, "approved", b, nil
}

// ensurePayerDefaults fills payer.type and, on sandbox tokens, a test payer
// email when neither payer.id nor payer.email was given.
func (u *SettlementUseCase) ensurePayerDefaults(m map[string]any) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	switch {
	case u.cfg.TestPayerEmail != "":
		payer["email"] = u.cfg.TestPayerEmail
	case u.cfg.SandboxToken:
		payer["email"] = "test_user_es@testuser.com"
	}
}

// normalizeSandboxPayer swaps the configured sandbox user id for its email,
// which the sandbox accepts more reliably.
func (u *SettlementUseCase) normalizeSandboxPayer(m map[string]any) {
	if !u.cfg.SandboxToken || u.cfg.TestPayerUserID == "" || u.cfg.TestPayerEmail == "" {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.cfg.TestPayerUserID {
		return
	}
	payer["email"] = u.cfg.TestPayerEmail
	delete(payer, "id")
}

func paymentStatusFromProvider(status string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v)) != ""
}

func classifyGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, `"code":2002`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayCustomerNotFound, err)
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, `"code":2034`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayInvalidUsers, err)
	case strings.Contains(msg, `"error":"unauthorized"`) || strings.Contains(msg, `"status":401`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayUnauthorized, err)
	case strings.Contains(msg, `"error":"bad_request"`) || strings.Contains(msg, `"status":400`):
		return fmt.Errorf("%w: %v", ErrPaymentGatewayBadRequest, err)
	}
	return err
}

// projectLocks serializes settlements of the same project within the process.
type projectLocks struct {
	mu   sync.Mutex
	held map[string]*projectLock
}

type projectLock struct {
	sync.Mutex
	refs int
}

func (l *projectLocks) lock(projectID string) func() {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*projectLock)
	}
	pl, ok := l.held[projectID]
	if !ok {
		pl = &projectLock{}
		l.held[projectID] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.Lock()
	return func() {
		pl.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.held, projectID)
		}
		l.mu.Unlock()
	}
}
