package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrSettlementBodyNotJSON     = errors.New("request body is not valid json")
	ErrSettlementEnvelopeIsEmpty = errors.New("mp_payload cannot be empty")
)

// SettlementRequest wraps the Mercado Pago payment body under `mp_payload`.
// A bare payment body is accepted as well.
type SettlementRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ParseSettlementBody returns the payment body to send to the provider.
// An empty request body becomes an empty object.
func ParseSettlementBody(raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrSettlementBodyNotJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return json.RawMessage(raw), nil
	}
	if _, wrapped := fields["mp_payload"]; !wrapped {
		return json.RawMessage(raw), nil
	}

	var req SettlementRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	if p := bytes.TrimSpace(req.MPPayload); len(p) == 0 || bytes.Equal(p, []byte("null")) {
		return nil, ErrSettlementEnvelopeIsEmpty
	}
	return req.MPPayload, nil
}
