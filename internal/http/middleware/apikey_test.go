package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func protectedEcho(key string) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return APIKey(key, nil)(next)
}

func TestAPIKeyAccepted(t *testing.T) {
	h := protectedEcho("secret")
	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("X-API-Key", "secret")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAPIKeyRejected(t *testing.T) {
	h := protectedEcho("secret")

	for _, key := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
		if key != "" {
			req.Header.Set("X-API-Key", key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("key %q: expected 401, got %d", key, rec.Code)
		}
	}
}

func TestAPIKeyPreflightPasses(t *testing.T) {
	h := protectedEcho("secret")
	req := httptest.NewRequest(http.MethodOptions, "/api/search", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("preflight must pass without a key, got %d", rec.Code)
	}
}

func TestAPIKeyEmptyConfigRejectsAll(t *testing.T) {
	h := protectedEcho("")
	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with unset key, got %d", rec.Code)
	}
}
