package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kishore28kumar/pulss/internal/domain/entities"
	"github.com/kishore28kumar/pulss/internal/domain/providers"
	"github.com/kishore28kumar/pulss/pkg/config"
)

func TestParseIntentPayload_ValidResponse(t *testing.T) {
	raw := `{
		"search_type": "symptom",
		"keywords": ["headache", "fever", "pain relief"],
		"suggestions": ["paracetamol", "ibuprofen"],
		"explanation": "Searching for headache remedies"
	}`

	analysis, err := parseIntentPayload([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.SearchType != entities.SearchTypeSymptom {
		t.Errorf("wrong search type: %s", analysis.SearchType)
	}
	if len(analysis.Keywords) != 3 {
		t.Errorf("expected 3 keywords, got %d", len(analysis.Keywords))
	}
	if analysis.Suggestions[0] != "paracetamol" {
		t.Errorf("expected suggestion 'paracetamol', got %q", analysis.Suggestions[0])
	}
}

func TestParseIntentPayload_MalformedJSON(t *testing.T) {
	if _, err := parseIntentPayload([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestStripMarkdownFence(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, c := range cases {
		if got := stripMarkdownFence(c.input); got != c.want {
			t.Errorf("stripMarkdownFence(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{
		APIKey:       "test-key",
		RateLimitRPM: -1, // disable the limiter in tests
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	client.baseURL = server.URL
	return client, server
}

func TestAnalyzeQuery_ParsesFencedOutput(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %q", got)
		}
		text := "```json\n{\"search_type\": \"product\", \"keywords\": [\"paracetamol\"]}\n```"
		envelope := responseEnvelope{
			Output: []responseOutput{{Content: []responseContent{{Type: "output_text", Text: text}}}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(envelope)
	})

	analysis, err := client.AnalyzeQuery(context.Background(), "paracetamol", entities.BusinessTypePharmacy)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.SearchType != entities.SearchTypeProduct {
		t.Errorf("wrong search type: %s", analysis.SearchType)
	}
	if len(analysis.Keywords) != 1 || analysis.Keywords[0] != "paracetamol" {
		t.Errorf("unexpected keywords: %v", analysis.Keywords)
	}
}

func TestAnalyzeQuery_ServerErrorIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.AnalyzeQuery(context.Background(), "paracetamol", entities.BusinessTypePharmacy)
	if !errors.Is(err, providers.ErrIntentUnavailable) {
		t.Fatalf("expected ErrIntentUnavailable, got %v", err)
	}
}

func TestAnalyzeQuery_MissingOutputIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": []}`))
	})

	_, err := client.AnalyzeQuery(context.Background(), "paracetamol", entities.BusinessTypePharmacy)
	if !errors.Is(err, providers.ErrIntentUnavailable) {
		t.Fatalf("expected ErrIntentUnavailable, got %v", err)
	}
}

func TestAnalyzeQuery_ContextDeadlineIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"output": []}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.AnalyzeQuery(ctx, "paracetamol", entities.BusinessTypePharmacy)
	if !errors.Is(err, providers.ErrIntentUnavailable) {
		t.Fatalf("expected ErrIntentUnavailable, got %v", err)
	}
}

func TestAnalyzeQuery_EmptyQueryIsUnavailable(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	})

	_, err := client.AnalyzeQuery(context.Background(), "   ", entities.BusinessTypePharmacy)
	if !errors.Is(err, providers.ErrIntentUnavailable) {
		t.Fatalf("expected ErrIntentUnavailable, got %v", err)
	}
}

func TestBuildIntentUserPrompt_IncludesBusinessVocabulary(t *testing.T) {
	pharmacy := buildIntentUserPrompt("headache", entities.BusinessTypePharmacy)
	grocery := buildIntentUserPrompt("milk", entities.BusinessTypeGrocery)

	if pharmacy == grocery {
		t.Error("expected different prompts per business type")
	}
	if want := "headache"; !strings.Contains(pharmacy, want) {
		t.Errorf("prompt missing query %q", want)
	}
}
