package convertkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"funnel/internal/infra"
)

// ErrNotConfigured indicates the client is missing the credentials a call
// needs. Marketing subscribes treat this as a skip; the fulfillment tag treats
// it as a delivery failure.
var ErrNotConfigured = errors.New("convertkit: not configured")

// Options configures the ConvertKit client. The form endpoint authenticates
// with the public API key, the tag endpoint with the account API secret.
type Options struct {
	APIKey         string
	APISecret      string
	FormID         string
	PurchaseTagID  string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the ConvertKit v3 API.
type Client struct {
	apiKey        string
	apiSecret     string
	formID        string
	purchaseTagID string
	baseURL       string
	httpClient    *http.Client
	logger        *infra.Logger
}

type subscribeRequest struct {
	APIKey    string `json:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
}

type subscribeResponse struct {
	Subscription struct {
		ID         int64 `json:"id"`
		Subscriber struct {
			ID int64 `json:"id"`
		} `json:"subscriber"`
	} `json:"subscription"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.convertkit.com/v3"
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:        strings.TrimSpace(opts.APIKey),
		apiSecret:     strings.TrimSpace(opts.APISecret),
		formID:        strings.TrimSpace(opts.FormID),
		purchaseTagID: strings.TrimSpace(opts.PurchaseTagID),
		baseURL:       baseURL,
		httpClient:    httpClient,
		logger:        logger,
	}
}

// Subscribe adds a contact to the marketing form. A missing API key or form
// id downgrades to a logged skip so lead capture never breaks opt-in flows.
func (c *Client) Subscribe(ctx context.Context, email, name string) error {
	if c.apiKey == "" || c.formID == "" {
		c.logger.Warn().Msg("convertkit: api key or form id not configured, skipping subscribe")
		return nil
	}
	endpoint := fmt.Sprintf("%s/forms/%s/subscribe", c.baseURL, c.formID)
	return c.post(ctx, endpoint, subscribeRequest{
		APIKey:    c.apiKey,
		Email:     email,
		FirstName: name,
	})
}

// TagPurchase tags a subscriber with the purchase tag, triggering the
// fulfillment automation. Unlike Subscribe, missing configuration is an error:
// the caller needs to know delivery did not happen.
func (c *Client) TagPurchase(ctx context.Context, email, name string) error {
	if c.apiSecret == "" || c.purchaseTagID == "" {
		return fmt.Errorf("purchase tag: %w", ErrNotConfigured)
	}
	endpoint := fmt.Sprintf("%s/tags/%s/subscribe", c.baseURL, c.purchaseTagID)
	return c.post(ctx, endpoint, subscribeRequest{
		APISecret: c.apiSecret,
		Email:     email,
		FirstName: name,
	})
}

func (c *Client) post(ctx context.Context, endpoint string, payload subscribeRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("convertkit: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("convertkit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("convertkit: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("convertkit: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var detail subscribeResponse
		if err := json.Unmarshal(raw, &detail); err == nil && detail.Error != "" {
			return fmt.Errorf("convertkit: %s: %s", detail.Error, detail.Message)
		}
		return fmt.Errorf("convertkit: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded subscribeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("convertkit: decode response: %w", err)
	}
	c.logger.Debug().
		Int64("subscriber_id", decoded.Subscription.Subscriber.ID).
		Str("endpoint", endpoint).
		Msg("convertkit: subscribed")
	return nil
}
