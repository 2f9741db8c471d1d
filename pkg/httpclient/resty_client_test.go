package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRestyClientDoSendsRequestParts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("unexpected content type %q", got)
		}
		if got := r.URL.Query().Get("k"); got != "v" {
			t.Errorf("unexpected query value %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "a=b&c" {
			t.Errorf("unexpected body %q", body)
		}
		w.Header().Set("X-Reply", "1")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewRestyClient(0)
	resp, err := c.Do(context.Background(), Request{
		Method:      http.MethodPut,
		URL:         srv.URL + "/x",
		Headers:     map[string]string{"Content-Type": "text/plain"},
		QueryParams: map[string]string{"k": "v"},
		Body:        "a=b&c",
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusAccepted {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != "ok" {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if resp.Header().Get("X-Reply") != "1" {
		t.Fatalf("response header missing")
	}
}

func TestRestyClientDoReturnsNonSuccessWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	resp, err := NewRestyClient(0).Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.StatusCode() != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
}

func TestRestyClientDoConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := NewRestyClient(0).Do(context.Background(), Request{Method: http.MethodGet, URL: url}); err == nil {
		t.Fatalf("expected connection error")
	}
}
