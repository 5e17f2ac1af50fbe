// Package paystack implements payment verification against the Paystack API.
// Verification is read-only: a non-success processor status is reported as an
// unconfirmed payment, not as an error, so callers can distinguish "payment
// not confirmed" from transport or configuration failures.
package paystack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/monocle-wallet-service/internal/config"
)

// ErrMissingSecretKey indicates the verification credential is not configured
var ErrMissingSecretKey = errors.New("paystack secret key is not configured")

// VerificationResult is the outcome of a processor lookup for a reference
type VerificationResult struct {
	Success  bool            // True only for an authoritative "success" status
	Amount   int64           // Settled amount in the processor's minor unit (kobo)
	Status   string          // Raw processor transaction status
	Currency string
	Raw      json.RawMessage // Full processor payload, retained for audit
}

// Verifier confirms a payment reference with the external processor
type Verifier interface {
	Verify(ctx context.Context, reference string) (*VerificationResult, error)
}

// verifyResponse mirrors the Paystack transaction verify payload
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status   string `json:"status"`
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	} `json:"data"`
}

// Client is an HTTP Verifier backed by the Paystack transaction verify endpoint
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *slog.Logger
}

// NewClient creates a Paystack verification client with a bounded request timeout
func NewClient(logger *slog.Logger, cfg *config.PaystackConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		secretKey:  cfg.SecretKey,
		logger:     logger,
	}
}

// Verify issues an authenticated lookup for the reference. It returns
// ErrMissingSecretKey when no credential is configured and a wrapped transport
// error when the processor is unreachable or responds with a malformed or
// non-2xx payload. It has no side effects.
func (c *Client) Verify(ctx context.Context, reference string) (*VerificationResult, error) {
	if reference == "" {
		return nil, errors.New("reference cannot be empty")
	}
	if c.secretKey == "" {
		return nil, ErrMissingSecretKey
	}

	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Paystack verification request failed", "reference", reference, "error", err)
		return nil, fmt.Errorf("paystack verification request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 500 {
		c.logger.Error("Paystack returned server error", "reference", reference, "status_code", resp.StatusCode)
		return nil, fmt.Errorf("paystack returned status %d", resp.StatusCode)
	}

	var payload verifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}

	// A 4xx or a false top-level status means the processor could not confirm
	// the payment; that is a verification failure, not a transport error.
	result := &VerificationResult{
		Success:  payload.Status && payload.Data.Status == "success" && resp.StatusCode < 300,
		Amount:   payload.Data.Amount,
		Status:   payload.Data.Status,
		Currency: payload.Data.Currency,
		Raw:      json.RawMessage(body),
	}

	c.logger.Debug("Paystack verification completed",
		"reference", reference,
		"confirmed", result.Success,
		"processor_status", result.Status,
	)

	return result, nil
}
