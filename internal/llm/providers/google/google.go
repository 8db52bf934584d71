// internal/llm/providers/google/google.go
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/richiewg3/DreamWeaver/internal/llm"
)

const (
	// DefaultModel is the fixed model identifier for scene-prompt
	// generation.
	DefaultModel = "gemini-2.5-flash-lite"

	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

func init() {
	llm.Register("google", func() llm.Provider {
		return &Provider{baseURL: defaultBaseURL}
	})
}

// Provider calls the Gemini generateContent endpoint with a system
// instruction, one text part and ordered inline image parts.
type Provider struct {
	apiKey       string
	baseURL      string
	defaultModel string
	client       *http.Client
}

func (p *Provider) Initialize(config map[string]string) error {
	apiKey, exists := config["api_key"]
	if !exists || apiKey == "" {
		return errors.New("google api key not provided")
	}

	p.apiKey = apiKey
	p.client = &http.Client{Timeout: 120 * time.Second}

	if model, exists := config["default_model"]; exists && model != "" {
		p.defaultModel = model
	} else {
		p.defaultModel = DefaultModel
	}

	if baseURL, exists := config["base_url"]; exists && baseURL != "" {
		p.baseURL = baseURL
	}

	return nil
}

func (p *Provider) Name() string {
	return "google gemini"
}

func (p *Provider) Generate(ctx context.Context, req llm.GenerationRequest) (string, error) {
	// Text part first, then every image attachment in order.
	parts := make([]map[string]any, 0, len(req.Images)+1)
	parts = append(parts, map[string]any{"text": req.Text})
	for _, img := range req.Images {
		parts = append(parts, map[string]any{
			"inline_data": map[string]string{
				"mime_type": img.MIMEType,
				"data":      img.Data,
			},
		})
	}

	requestBody := map[string]any{
		"contents": []map[string]any{
			{"role": "user", "parts": parts},
		},
	}
	if req.SystemInstruction != "" {
		requestBody["system_instruction"] = map[string]any{
			"parts": []map[string]string{{"text": req.SystemInstruction}},
		}
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	apiURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.defaultModel, p.apiKey)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(httpResp.Body)
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error.Message != "" {
			return "", fmt.Errorf("google gemini API error (%d): %s", httpResp.StatusCode, errorResp.Error.Message)
		}
		return "", fmt.Errorf("google gemini API error (%d): %s", httpResp.StatusCode, string(body))
	}

	var response struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&response); err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 {
		return "", errors.New("google gemini returned no candidates")
	}

	var resultText string
	for _, part := range response.Candidates[0].Content.Parts {
		resultText += part.Text
	}
	return resultText, nil
}
