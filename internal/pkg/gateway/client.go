package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FelixBrandt/ShopFox/internal/pkg/env"
)

const defaultGatewayAPIBaseURL = "https://api.payfox.example.com"

// Client talks to the external payment gateway's REST API.
type Client struct {
	APIBaseURL string
	SecretKey  string

	HTTPClient *http.Client
}

// ProviderPayment is the gateway's view of one payment.
type ProviderPayment struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewClientFromEnv() *Client {
	timeout := env.GetEnvInt("PAYMENT_GATEWAY_TIMEOUT_SECONDS", 15)

	return &Client{
		APIBaseURL: strings.TrimRight(env.GetEnv("PAYMENT_GATEWAY_API_URL", defaultGatewayAPIBaseURL), "/"),
		SecretKey:  strings.TrimSpace(env.GetEnv("PAYMENT_GATEWAY_SECRET_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Retrieve fetches the authoritative state of one payment from the gateway.
func (c *Client) Retrieve(ctx context.Context, externalReference string) (*ProviderPayment, error) {
	ref := strings.TrimSpace(externalReference)
	if ref == "" {
		return nil, errors.New("external reference is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYMENT_GATEWAY_SECRET_KEY is not configured")
	}

	u, err := url.Parse(strings.TrimRight(c.APIBaseURL, "/") + "/v1/payments/" + url.PathEscape(ref))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_GATEWAY_API_URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway payment lookup failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out ProviderPayment
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Status) == "" {
		return nil, errors.New("gateway payment response missing status")
	}
	return &out, nil
}
