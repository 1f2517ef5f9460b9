package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// completionServer returns an httptest server answering every chat completion
// with the given assistant content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func client(srv *httptest.Server) *Client {
	return New("test-key", srv.URL+"/v1", "chat-model", "utility-model")
}

func TestRespond_ParsesStructuredReply(t *testing.T) {
	srv := completionServer(t, `{"reaction":"facepalm","response":"You really thought that was a good idea?"}`)
	defer srv.Close()
	r := client(srv).Respond(context.Background(), nil, "I texted my ex")
	if r.Reaction != "facepalm" {
		t.Fatalf("reaction: %q", r.Reaction)
	}
	if r.Text != "You really thought that was a good idea?" {
		t.Fatalf("text: %q", r.Text)
	}
}

func TestRespond_FallbacksOnFailure(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"status_non_2xx", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500); _, _ = w.Write([]byte("oops")) }},
		{"bad_json_body", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("not-json")) }},
		{"empty_choices", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}},
		{"unparseable_reply", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"just prose, no json"}}]}`))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()
			r := client(srv).Respond(context.Background(), nil, "hi")
			if r.Text != FallbackReply || r.Reaction != "shrug" {
				t.Fatalf("expected literal fallback, got %+v", r)
			}
		})
	}
}

func TestRespond_InvalidReactionNormalized(t *testing.T) {
	srv := completionServer(t, `{"reaction":"confetti","response":"No."}`)
	defer srv.Close()
	r := client(srv).Respond(context.Background(), nil, "hi")
	if r.Reaction != "shrug" {
		t.Fatalf("expected shrug for unknown reaction, got %q", r.Reaction)
	}
}

func TestSentiment_ClampsAndFallsBack(t *testing.T) {
	srv := completionServer(t, `{"score": 14}`)
	defer srv.Close()
	if got := client(srv).Sentiment(context.Background(), "all is lost"); got != 10 {
		t.Fatalf("expected clamp to 10, got %d", got)
	}
	srv2 := completionServer(t, `{"score": 7}`)
	defer srv2.Close()
	if got := client(srv2).Sentiment(context.Background(), "meh"); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	srv3 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(503) }))
	defer srv3.Close()
	if got := client(srv3).Sentiment(context.Background(), "meh"); got != FallbackScore {
		t.Fatalf("expected neutral fallback, got %d", got)
	}
}

func TestTitle_StripsQuotesAndFallsBack(t *testing.T) {
	srv := completionServer(t, `"Hope Dies On Read"`)
	defer srv.Close()
	if got := client(srv).Title(context.Background(), "u", "p"); got != "Hope Dies On Read" {
		t.Fatalf("title: %q", got)
	}
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500) }))
	defer srv2.Close()
	if got := client(srv2).Title(context.Background(), "u", "p"); got != FallbackTitle {
		t.Fatalf("expected fallback title, got %q", got)
	}
}

func TestDailyTruth_Fallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(500) }))
	defer srv.Close()
	if got := client(srv).DailyTruth(context.Background()); got != FallbackTruth {
		t.Fatalf("expected fallback truth, got %q", got)
	}
}
