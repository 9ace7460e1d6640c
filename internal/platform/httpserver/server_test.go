package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	ledgerservice "caravan/contexts/trip-finance/ledger-service"
	pollservice "caravan/contexts/trip-planning/poll-service"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(
		ledgerservice.NewInMemoryModule(logger),
		pollservice.NewInMemoryModule(logger),
		logger,
		opts,
	)
}

func doJSON(
	t *testing.T,
	server *Server,
	method string,
	path string,
	userID string,
	body any,
) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(recorder.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func TestSwaggerRouteIsMounted(t *testing.T) {
	server := newTestServer(t, Options{})
	recorder := doJSON(t, server, http.MethodGet, "/swagger/doc.json", "", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected swagger doc to be served, got %d", recorder.Code)
	}
}
