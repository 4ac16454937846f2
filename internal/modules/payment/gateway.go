package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway is the interface to the external card-payment service. The flow is
// two-step and not atomic: a client token is issued first, then the sale is
// settled with the nonce the client produced against that token.
type Gateway interface {
	// ClientToken requests a fresh client authorization token.
	ClientToken(ctx context.Context) (*TokenResponse, error)

	// Sale submits a sale for the given decimal amount and nonce.
	Sale(ctx context.Context, amount string, nonce string) (*SaleResult, error)
}

// TokenResponse is the gateway-issued client token payload, passed through
// to the client unchanged.
type TokenResponse struct {
	ClientToken string `json:"clientToken"`
}

// SaleResult is the gateway's settlement outcome. Raw carries the full
// response body; it is persisted on the order as an opaque blob.
type SaleResult struct {
	TransactionID string
	Status        string
	Raw           json.RawMessage
}

// Credentials is the process-wide gateway configuration, injected at
// construction and read-only afterwards.
type Credentials struct {
	MerchantID string
	PublicKey  string
	PrivateKey string
	BaseURL    string
	Env        string // sandbox | production
}

type cardGateway struct {
	creds  Credentials
	client *http.Client
}

// NewCardGateway builds the HTTP-backed gateway adapter.
func NewCardGateway(creds Credentials) Gateway {
	return &cardGateway{
		creds:  creds,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *cardGateway) ClientToken(ctx context.Context) (*TokenResponse, error) {
	body, err := g.post(ctx, "/client_token", map[string]interface{}{})
	if err != nil {
		return nil, err
	}
	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding client token: %w", err)
	}
	return &resp, nil
}

func (g *cardGateway) Sale(ctx context.Context, amount string, nonce string) (*SaleResult, error) {
	body, err := g.post(ctx, "/transactions", map[string]interface{}{
		"amount":               amount,
		"payment_method_nonce": nonce,
		"options": map[string]interface{}{
			"submit_for_settlement": true,
		},
	})
	if err != nil {
		return nil, err
	}
	var resp struct {
		ID      string `json:"id"`
		Status  string `json:"status"`
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding sale response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("sale declined: %s", resp.Message)
	}
	return &SaleResult{TransactionID: resp.ID, Status: resp.Status, Raw: body}, nil
}

func (g *cardGateway) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := g.creds.BaseURL + "/merchants/" + g.creds.MerchantID + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(g.creds.PublicKey, g.creds.PrivateKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
