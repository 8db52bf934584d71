// internal/llm/providers/google/google_test.go
package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/richiewg3/DreamWeaver/internal/llm"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*Provider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p := &Provider{baseURL: defaultBaseURL}
	err := p.Initialize(map[string]string{
		"api_key":  "test-key",
		"base_url": server.URL,
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return p, server
}

func TestInitializeRequiresAPIKey(t *testing.T) {
	p := &Provider{}
	if err := p.Initialize(map[string]string{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}

func TestInitializeDefaults(t *testing.T) {
	p := &Provider{baseURL: defaultBaseURL}
	if err := p.Initialize(map[string]string{"api_key": "k"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if p.defaultModel != DefaultModel {
		t.Errorf("default model = %q, want %q", p.defaultModel, DefaultModel)
	}
}

func TestGenerateRequestShape(t *testing.T) {
	var captured struct {
		path string
		body map[string]any
	}

	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path + "?" + r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&captured.body)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{
					{"text": "part one "},
					{"text": "part two"},
				}}},
			},
		})
	})

	req := llm.GenerationRequest{
		SystemInstruction: "system text",
		Text:              "user text",
		Images: []llm.ImagePart{
			{MIMEType: "image/png", Data: "aGVsbG8="},
		},
	}

	got, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "part one part two" {
		t.Errorf("result = %q, want concatenated candidate parts", got)
	}

	if !strings.Contains(captured.path, "/models/"+DefaultModel+":generateContent") {
		t.Errorf("path = %q", captured.path)
	}
	if !strings.Contains(captured.path, "key=test-key") {
		t.Errorf("api key missing from query: %q", captured.path)
	}

	if _, ok := captured.body["system_instruction"]; !ok {
		t.Error("system_instruction block missing")
	}

	contents := captured.body["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	if len(parts) != 2 {
		t.Fatalf("want 2 parts (text + image), got %d", len(parts))
	}
	if _, ok := parts[0].(map[string]any)["text"]; !ok {
		t.Error("first part must be the text block")
	}
	inline, ok := parts[1].(map[string]any)["inline_data"].(map[string]any)
	if !ok {
		t.Fatal("second part must be inline_data")
	}
	if inline["mime_type"] != "image/png" || inline["data"] != "aGVsbG8=" {
		t.Errorf("inline_data = %v", inline)
	}
}

func TestGenerateAPIError(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "quota exceeded"},
		})
	})

	_, err := p.Generate(context.Background(), llm.GenerationRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error = %v", err)
	}
}

func TestGenerateNoCandidates(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	})

	_, err := p.Generate(context.Background(), llm.GenerationRequest{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "no candidates") {
		t.Errorf("error = %v", err)
	}
}
