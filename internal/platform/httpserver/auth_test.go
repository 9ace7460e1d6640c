package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	ledgerhttp "caravan/contexts/trip-finance/ledger-service/transport/http"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func postExpenseWithAuth(t *testing.T, server *Server, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(ledgerhttp.CreateExpenseRequest{
		PayerID:     "alice",
		Amount:      10.00,
		SplitPolicy: "equal",
	})
	if err != nil {
		t.Fatalf("encode request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/trip-1/expenses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestBearerTokenIdentity(t *testing.T) {
	server := newTestServer(t, Options{JWTSecret: "test-secret"})
	seedLedgerTrip(server, "trip-1", "alice", "bob")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	recorder := postExpenseWithAuth(t, server, "Bearer "+token)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected signed bearer to authenticate, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestBearerTokenFallsBackToSubject(t *testing.T) {
	server := newTestServer(t, Options{JWTSecret: "test-secret"})
	seedLedgerTrip(server, "trip-1", "alice", "bob")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	recorder := postExpenseWithAuth(t, server, "Bearer "+token)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected subject claim to authenticate, got %d: %s", recorder.Code, recorder.Body.String())
	}
}

func TestBearerTokenWrongSecretIsRejected(t *testing.T) {
	server := newTestServer(t, Options{JWTSecret: "test-secret"})
	seedLedgerTrip(server, "trip-1", "alice", "bob")

	token := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	recorder := postExpenseWithAuth(t, server, "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected forged bearer to be rejected, got %d", recorder.Code)
	}
}

func TestExpiredBearerTokenIsRejected(t *testing.T) {
	server := newTestServer(t, Options{JWTSecret: "test-secret"})
	seedLedgerTrip(server, "trip-1", "alice", "bob")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	recorder := postExpenseWithAuth(t, server, "Bearer "+token)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected expired bearer to be rejected, got %d", recorder.Code)
	}
}

func TestHeaderIdentityIgnoredWhenBearerPresent(t *testing.T) {
	server := newTestServer(t, Options{JWTSecret: "test-secret"})
	seedLedgerTrip(server, "trip-1", "alice", "bob")

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "alice",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	body, err := json.Marshal(ledgerhttp.CreateExpenseRequest{
		Amount:      10.00,
		SplitPolicy: "equal",
	})
	if err != nil {
		t.Fatalf("encode request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/trips/trip-1/expenses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-User-Id", "mallory")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("create expense returned %d: %s", recorder.Code, recorder.Body.String())
	}
	var expense ledgerhttp.ExpenseResponse
	decodeBody(t, recorder, &expense)
	if expense.PayerID != "alice" {
		t.Fatalf("bearer identity must win over the header, payer is %q", expense.PayerID)
	}
}
