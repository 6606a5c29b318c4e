package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ManuelReschke/CartFox/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API. The secret key and callback URL are
// injected at construction; the HTTP client carries a bounded timeout so a
// stalled gateway surfaces as an error instead of hanging the request worker.
type Client struct {
	SecretKey   string
	APIBaseURL  string
	CallbackURL string
	Currency    string

	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		SecretKey:   strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		APIBaseURL:  strings.TrimRight(env.GetEnv("PAYSTACK_API_BASE_URL", defaultAPIBaseURL), "/"),
		CallbackURL: strings.TrimSpace(env.GetEnv("PAYSTACK_CALLBACK_URL", "")),
		Currency:    strings.TrimSpace(env.GetEnv("PAYSTACK_CURRENCY", "NGN")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InitializeTransaction opens a checkout session for the given amount in minor
// units and returns the redirect handle the client completes payment with.
func (c *Client) InitializeTransaction(ctx context.Context, in InitializeRequest) (*InitializeData, error) {
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("email is required")
	}
	if in.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if strings.TrimSpace(in.Reference) == "" {
		return nil, errors.New("reference is required")
	}
	if in.Currency == "" {
		in.Currency = c.Currency
	}
	if in.CallbackURL == "" {
		in.CallbackURL = c.CallbackURL
	}

	var data InitializeData
	if err := c.doJSON(ctx, http.MethodPost, "/transaction/initialize", in, &data); err != nil {
		return nil, err
	}
	if strings.TrimSpace(data.AuthorizationURL) == "" {
		return nil, errors.New("paystack returned no authorization_url")
	}
	return &data, nil
}

// VerifyTransaction fetches the gateway's current view of a transaction by the
// reference we generated at initiation time.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerifyData, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, errors.New("reference is required")
	}

	var data VerifyData
	path := "/transaction/verify/" + url.PathEscape(ref)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// RefundTransaction asks the gateway to refund a settled transaction, fully or
// partially. The amount is in minor units; zero means full refund.
func (c *Client) RefundTransaction(ctx context.Context, transactionID string, amount int64) (*RefundData, error) {
	txn := strings.TrimSpace(transactionID)
	if txn == "" {
		return nil, errors.New("transaction id is required")
	}

	var data RefundData
	if err := c.doJSON(ctx, http.MethodPost, "/refund", refundRequest{Transaction: txn, Amount: amount}, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("PAYSTACK_SECRET_KEY is not configured")
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.APIBaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("paystack response read failed: %w", err)
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("paystack returned status %d with undecodable body", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !envelope.Status {
		msg := strings.TrimSpace(envelope.Message)
		if msg == "" {
			msg = "request not successful"
		}
		return fmt.Errorf("paystack %s %s: status %d: %s", method, path, resp.StatusCode, msg)
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("paystack data decode failed: %w", err)
		}
	}
	return nil
}
