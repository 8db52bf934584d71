// internal/llm/client.go
package llm

import (
	"context"
	"sync"
	"time"
)

// NotConfiguredMessage is the fixed user-visible message committed to a
// beat when generation is attempted without a credential.
const NotConfiguredMessage = "API key not configured. Please add GOOGLE_API_KEY to your .env file."

// Client wraps a single external generation call behind result-value
// semantics: Configured is a pure credential check, Generate performs
// exactly one call and converts every failure into a GenerationResult.
type Client interface {
	Configured() bool
	Generate(ctx context.Context, req GenerationRequest) GenerationResult
}

// providerClient lazily initializes its Provider on first use so a key
// added to the environment after startup is picked up without a
// restart.
type providerClient struct {
	providerName string
	config       map[string]string

	mu       sync.Mutex
	provider Provider
}

// NewClient creates a Client backed by the named registered provider.
// config must carry "api_key"; "default_model" and "base_url" are
// passed through to the provider.
func NewClient(providerName string, config map[string]string) Client {
	cfg := make(map[string]string, len(config))
	for k, v := range config {
		cfg[k] = v
	}
	return &providerClient{providerName: providerName, config: cfg}
}

// Configured reports whether a credential is present. No network I/O.
func (c *providerClient) Configured() bool {
	return c.config["api_key"] != ""
}

// Generate runs one generation call. Missing credentials surface as a
// deterministic failure result before any network attempt.
func (c *providerClient) Generate(ctx context.Context, req GenerationRequest) GenerationResult {
	if !c.Configured() {
		return failure(NotConfiguredMessage)
	}

	provider, err := c.ensureProvider()
	if err != nil {
		return failure(err.Error())
	}

	text, err := provider.Generate(ctx, req)
	if err != nil {
		return failure(err.Error())
	}

	return GenerationResult{
		Success:   true,
		Prompt:    text,
		Timestamp: time.Now().UTC(),
	}
}

func (c *providerClient) ensureProvider() (Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.provider != nil {
		return c.provider, nil
	}
	provider, err := NewProvider(c.providerName, c.config)
	if err != nil {
		return nil, err
	}
	c.provider = provider
	return provider, nil
}

func failure(message string) GenerationResult {
	return GenerationResult{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC(),
	}
}
