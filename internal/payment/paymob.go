package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"webify-be/internal/config"
	"webify-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	authTokenPath  = "/api/auth/tokens"
	orderPath      = "/api/ecommerce/orders"
	paymentKeyPath = "/api/acceptance/payment_keys"
	iframePath     = "/api/acceptance/iframes"

	// paymentKeyExpiration is how long the hosted frame stays payable, in
	// seconds.
	paymentKeyExpiration = 3600
)

// PaymobClient talks to the Paymob Accept API. A session is a three-call
// handshake: auth token, order registration, payment key.
type PaymobClient struct {
	baseURL       string
	apiKey        string
	hmacKey       string
	integrationID int
	iframeID      string
	httpClient    *http.Client
}

func NewPaymobClient(cfg *config.Config) *PaymobClient {
	// The gateway wants the integration id as a number.
	integrationID, err := strconv.Atoi(cfg.PaymobIntegrationID)
	if err != nil {
		logger.L().Warn("invalid PAYMOB_INTEGRATION_ID", zap.String("value", cfg.PaymobIntegrationID))
	}

	return &PaymobClient{
		baseURL:       cfg.PaymobBaseURL,
		apiKey:        cfg.PaymobAPIKey,
		hmacKey:       cfg.PaymobHMACKey,
		integrationID: integrationID,
		iframeID:      cfg.PaymobIframeID,
		httpClient:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PaymobClient) CreateSession(ctx context.Context, orderID uint, amount decimal.Decimal, billing BillingData) (int64, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.Uint("order_id", orderID),
	)

	amountCents := toCents(amount)

	token, err := p.authToken(ctx)
	if err != nil {
		log.Error("auth token request failed", zap.Error(err))
		return 0, "", err
	}

	gatewayOrderID, err := p.registerOrder(ctx, token, orderID, amountCents)
	if err != nil {
		log.Error("order registration failed", zap.Error(err))
		return 0, "", err
	}

	key, err := p.paymentKey(ctx, token, gatewayOrderID, amountCents, billing)
	if err != nil {
		log.Error("payment key request failed", zap.Error(err))
		return 0, "", err
	}

	log.Info("payment session created", zap.Int64("gateway_order_id", gatewayOrderID))

	return gatewayOrderID, key, nil
}

func (p *PaymobClient) IframeURL(paymentKey string) string {
	return fmt.Sprintf("%s%s/%s?payment_token=%s", p.baseURL, iframePath, p.iframeID, paymentKey)
}

// VerifySignature computes HMAC-SHA256 over the raw webhook body and
// compares it to the hex signature in constant time.
func (p *PaymobClient) VerifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(p.hmacKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (p *PaymobClient) authToken(ctx context.Context) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	err := p.post(ctx, authTokenPath, map[string]any{"api_key": p.apiKey}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (p *PaymobClient) registerOrder(ctx context.Context, token string, orderID uint, amountCents int64) (int64, error) {
	// Each attempt gets a fresh merchant order id so a retried checkout
	// never collides with an earlier registration.
	merchantOrderID := fmt.Sprintf("%d-%s", orderID, uuid.New().String())

	payload := map[string]any{
		"auth_token":        token,
		"delivery_needed":   false,
		"amount_cents":      amountCents,
		"currency":          "EGP",
		"merchant_order_id": merchantOrderID,
		"items": []map[string]any{
			{
				"name":         fmt.Sprintf("Order #%d", orderID),
				"amount_cents": amountCents,
				"description":  "Order payment",
				"quantity":     1,
			},
		},
	}

	var resp struct {
		ID int64 `json:"id"`
	}
	if err := p.post(ctx, orderPath, payload, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (p *PaymobClient) paymentKey(ctx context.Context, token string, gatewayOrderID, amountCents int64, billing BillingData) (string, error) {
	payload := map[string]any{
		"auth_token":     token,
		"amount_cents":   amountCents,
		"expiration":     paymentKeyExpiration,
		"order_id":       gatewayOrderID,
		"billing_data":   billing,
		"currency":       "EGP",
		"integration_id": p.integrationID,
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := p.post(ctx, paymentKeyPath, payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (p *PaymobClient) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("gateway returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
