// Package payments adapts external payment providers to the settlement port.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"increa_invoicing/internal/infrastructure/logger"
	"increa_invoicing/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var (
	ErrMissingMercadoPagoAccessToken   = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
	ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
)

// MercadoPagoGateway charges invoices through the Mercado Pago payments API.
type MercadoPagoGateway struct {
	client payment.Client
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	log := logger.WithComponent("gateway")
	log.Info().Bool("sandbox", strings.HasPrefix(accessToken, "TEST-")).Msg("mercado pago client initialized")
	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// CreatePayment sends requestPayload, a Mercado Pago payment request body,
// and returns the provider id, status and full response.
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (string, string, json.RawMessage, error) {
	if g == nil || g.client == nil {
		return "", "", nil, ErrMercadoPagoGatewayNotConfigured
	}
	log := logger.FromContext(ctx, "gateway")

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		log.Warn().Err(err).Msg("payment request unmarshal failed")
		return "", "", nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("mercado pago create failed")
		return "", "", nil, err
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return "", "", nil, err
	}
	id := fmt.Sprintf("%d", resp.ID)
	log.Info().Str("provider_payment_id", id).Str("provider_status", resp.Status).Msg("mercado pago payment created")
	return id, resp.Status, body, nil
}
