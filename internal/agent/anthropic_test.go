package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAnthropicAgent(srv *httptest.Server, key string) *AnthropicAgent {
	a := NewAnthropicAgent()
	a.BaseURL = srv.URL
	a.HTTP = srv.Client()
	a.apiKey = func() string { return key }
	return a
}

func TestAnthropicComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("api key header = %q", got)
		}
		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": "[]"},
			},
		})
	}))
	defer srv.Close()

	a := newTestAnthropicAgent(srv, "test-key")

	out, err := a.complete(context.Background(), "review this", 5*time.Second)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out != "[]" {
		t.Errorf("out = %q", out)
	}
}

func TestAnthropicComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{
				"type":    "rate_limit_error",
				"message": "slow down",
			},
		})
	}))
	defer srv.Close()

	a := newTestAnthropicAgent(srv, "test-key")

	if _, err := a.complete(context.Background(), "x", 5*time.Second); err == nil {
		t.Error("expected error from API error response")
	}
}

func TestAnthropicComplete_MissingKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent without a key")
	}))
	defer srv.Close()

	a := newTestAnthropicAgent(srv, "")

	if _, err := a.complete(context.Background(), "x", time.Second); err == nil {
		t.Error("expected error when key is missing")
	}
	if a.available() {
		t.Error("agent without key should report unavailable")
	}
}

func TestAnthropicReviewCode_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]string{
				{"type": "text", "text": `Review done:
[{"line": 2, "body": "**MAJOR** missing error check", "severity": "major"}]`},
			},
		})
	}))
	defer srv.Close()

	a := newTestAnthropicAgent(srv, "test-key")

	got, err := a.ReviewCode(context.Background(), ReviewRequest{
		Path:  "main.go",
		Patch: "@@ -1,1 +1,2 @@\n ctx\n+added\n",
	})
	if err != nil {
		t.Fatalf("ReviewCode: %v", err)
	}
	if len(got) != 1 || got[0].Path != "main.go" || got[0].Line != 2 {
		t.Errorf("got = %+v", got)
	}
}
