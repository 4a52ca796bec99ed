package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected identifying User-Agent")
		}
		w.Write([]byte(`{"display_name":"Via Verdi 10, Trento, Italy"}`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Reverse(context.Background(), 46.07, 11.12)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr != "Via Verdi 10, Trento, Italy" {
		t.Fatalf("unexpected address %q", addr)
	}
}

func TestReverseUnknownAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Reverse(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if addr != "Unknown address" {
		t.Fatalf("expected fallback address, got %q", addr)
	}
}

func TestReverseProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Reverse(context.Background(), 46.07, 11.12); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestAutocompleteShortQuery(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	got := NewClient(srv.URL).Autocomplete(context.Background(), "vi", "it")
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
	if called {
		t.Fatal("short queries must not hit the provider")
	}
}

func TestAutocompleteDeduplicates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("countrycodes"); got != "it" {
			t.Errorf("unexpected countrycodes %q", got)
		}
		w.Write([]byte(`[
			{"address":{"road":"Via Roma","city":"Trento","state":"TAA"}},
			{"address":{"road":"Via Roma","city":"Trento","state":"TAA"}},
			{"address":{"road":"Via Roma","town":"Pergine","state":"TAA"}},
			{"address":{}}
		]`))
	}))
	defer srv.Close()

	got := NewClient(srv.URL).Autocomplete(context.Background(), "via roma", "it")
	want := []string{"Via Roma, Trento, TAA", "Via Roma, Pergine, TAA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAutocompleteProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	got := NewClient(srv.URL).Autocomplete(context.Background(), "via roma", "it")
	if len(got) != 0 {
		t.Fatalf("expected empty suggestions on failure, got %v", got)
	}
}
