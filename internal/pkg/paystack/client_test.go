package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		SecretKey:  "sk_test_secret",
		APIBaseURL: baseURL,
		Currency:   "NGN",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestInitializeTransaction(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody InitializeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "PS-1-order"
			}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	data, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Email:     "jane@example.com",
		Amount:    500000,
		Reference: "PS-1-order",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer sk_test_secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if gotPath != "/transaction/initialize" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody.Currency != "NGN" {
		t.Fatalf("expected client currency to be applied, got %q", gotBody.Currency)
	}
	if data.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Fatalf("authorization url = %q", data.AuthorizationURL)
	}
}

func TestInitializeTransaction_InputValidation(t *testing.T) {
	c := newTestClient("http://unused")

	if _, err := c.InitializeTransaction(context.Background(), InitializeRequest{Amount: 100, Reference: "r"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
	if _, err := c.InitializeTransaction(context.Background(), InitializeRequest{Email: "a@b.c", Reference: "r"}); err == nil {
		t.Fatalf("expected error for non-positive amount")
	}
	if _, err := c.InitializeTransaction(context.Background(), InitializeRequest{Email: "a@b.c", Amount: 100}); err == nil {
		t.Fatalf("expected error for missing reference")
	}
}

func TestInitializeTransaction_MissingAuthorizationURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": true, "message": "ok", "data": {"reference": "PS-1"}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.InitializeTransaction(context.Background(), InitializeRequest{
		Email: "jane@example.com", Amount: 1000, Reference: "PS-1",
	})
	if err == nil {
		t.Fatalf("expected error when gateway omits authorization_url")
	}
}

func TestVerifyTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/PS-1-order" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"id": 4099260516, "status": "success", "reference": "PS-1-order", "amount": 500000, "currency": "NGN"}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	data, err := c.VerifyTransaction(context.Background(), "PS-1-order")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Status != "success" || data.ID != 4099260516 || data.Amount != 500000 {
		t.Fatalf("unexpected verify data: %+v", data)
	}
}

func TestVerifyTransaction_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.VerifyTransaction(context.Background(), "PS-unknown")
	if err == nil {
		t.Fatalf("expected error for gateway failure response")
	}
	if !strings.Contains(err.Error(), "Transaction reference not found") {
		t.Fatalf("expected gateway message in error, got %q", err.Error())
	}
}

func TestVerifyTransaction_FalseStatusWith200(t *testing.T) {
	// Paystack can answer 200 with status=false; that is still a failure.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": false, "message": "nope"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.VerifyTransaction(context.Background(), "PS-1"); err == nil {
		t.Fatalf("expected error for status=false envelope")
	}
}

func TestRefundTransaction(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refund" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status": true, "message": "Refund has been queued", "data": {"id": 1, "status": "pending", "amount": 250000}}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	data, err := c.RefundTransaction(context.Background(), "4099260516", 250000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["transaction"] != "4099260516" {
		t.Fatalf("transaction = %v", gotBody["transaction"])
	}
	if data.Amount != 250000 {
		t.Fatalf("amount = %d", data.Amount)
	}

	if _, err := c.RefundTransaction(context.Background(), "  ", 100); err == nil {
		t.Fatalf("expected error for missing transaction id")
	}
}

func TestDoJSON_MissingSecretKey(t *testing.T) {
	c := newTestClient("http://unused")
	c.SecretKey = ""
	if _, err := c.VerifyTransaction(context.Background(), "PS-1"); err == nil {
		t.Fatalf("expected error when secret key is not configured")
	}
}
