package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shophub/internal/payment"
)

type stubProvider struct {
	createErr    error
	confirmErr   error
	lastRequest  payment.IntentRequest
	createCalls  int
	confirmCalls int
}

func (s *stubProvider) CreateIntent(_ context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	s.createCalls++
	s.lastRequest = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &payment.Intent{ID: "pi_test", ClientSecret: "pi_test_secret_abc"}, nil
}

func (s *stubProvider) ConfirmIntent(_ context.Context, _ string, _ payment.BillingDetails) (*payment.Confirmation, error) {
	s.confirmCalls++
	if s.confirmErr != nil {
		return nil, s.confirmErr
	}
	return &payment.Confirmation{IntentID: "pi_test", Status: "succeeded"}, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

const testBearer = "test-credential"

func paymentIntentRouter(provider payment.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return buildRouter(testLogger(), nil, Deps{Provider: provider, BearerToken: testBearer})
}

func intentBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"items": []map[string]any{
			{"id": "p1", "name": "Headphones", "price": 10.00, "category": "Electronics", "quantity": 2},
			{"id": "p2", "name": "Watch", "price": 5.00, "category": "Electronics", "quantity": 1},
		},
		"shippingAddress": map[string]string{
			"firstName": "Ada", "lastName": "Lovelace", "address": "12 Analytical Row",
			"city": "London", "state": "LDN", "zipCode": "NW1", "country": "GB",
		},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return body
}

func TestCreatePaymentIntent_RecomputesAmountFromItems(t *testing.T) {
	provider := &stubProvider{}
	router := paymentIntentRouter(provider)

	req := httptest.NewRequest(http.MethodPost, "/v1/create-payment-intent", bytes.NewReader(intentBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testBearer)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	// subtotal 25.00 -> round((25.00 + 9.99 + 2.50) * 100) = 3749
	if provider.lastRequest.AmountMinor != 3749 {
		t.Fatalf("expected 3749 minor units, got %d", provider.lastRequest.AmountMinor)
	}
	if provider.lastRequest.Currency != "usd" {
		t.Fatalf("expected usd, got %s", provider.lastRequest.Currency)
	}
	if provider.lastRequest.Metadata["shipping_address"] == "" || provider.lastRequest.Metadata["items"] == "" {
		t.Fatalf("expected address and items metadata, got %v", provider.lastRequest.Metadata)
	}

	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ClientSecret != "pi_test_secret_abc" {
		t.Fatalf("unexpected client secret %q", resp.ClientSecret)
	}
}

func TestCreatePaymentIntent_EmptyItemsStillChargeShipping(t *testing.T) {
	provider := &stubProvider{}
	router := paymentIntentRouter(provider)

	req := httptest.NewRequest(http.MethodPost, "/v1/create-payment-intent", bytes.NewReader([]byte(`{"items": []}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testBearer)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	// the flat shipping fee applies unconditionally
	if provider.lastRequest.AmountMinor != 999 {
		t.Fatalf("expected 999 minor units, got %d", provider.lastRequest.AmountMinor)
	}
}

func TestCreatePaymentIntent_ProviderErrorReturns400(t *testing.T) {
	provider := &stubProvider{createErr: errors.New("amount too small")}
	router := paymentIntentRouter(provider)

	req := httptest.NewRequest(http.MethodPost, "/v1/create-payment-intent", bytes.NewReader(intentBody(t)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testBearer)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "amount too small" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestCreatePaymentIntent_RequiresBearer(t *testing.T) {
	provider := &stubProvider{}
	router := paymentIntentRouter(provider)

	for _, header := range []string{"", "Bearer wrong", testBearer} {
		req := httptest.NewRequest(http.MethodPost, "/v1/create-payment-intent", bytes.NewReader(intentBody(t)))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
	if provider.createCalls != 0 {
		t.Fatalf("provider must not be called without valid credentials")
	}
}

func TestCreatePaymentIntent_MalformedBodyReturns400(t *testing.T) {
	provider := &stubProvider{}
	router := paymentIntentRouter(provider)

	req := httptest.NewRequest(http.MethodPost, "/v1/create-payment-intent", bytes.NewReader([]byte(`{"items":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testBearer)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if provider.createCalls != 0 {
		t.Fatalf("provider must not be called for malformed input")
	}
}

func TestCreatePaymentIntent_PreflightAnswersCORS(t *testing.T) {
	router := paymentIntentRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/create-payment-intent", nil)
	req.Header.Set("Origin", "https://storefront.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, content-type")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected permissive origin, got %q", got)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("preflight must have no body, got %q", rec.Body.String())
	}
}
