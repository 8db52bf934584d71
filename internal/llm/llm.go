// internal/llm/llm.go
package llm

import (
	"context"
	"errors"
	"time"
)

// ImagePart is one reference image attached to a generation request:
// raw base64 payload plus its MIME type, already split out of the
// stored data URI.
type ImagePart struct {
	MIMEType string
	Data     string
}

// GenerationRequest is the composed payload for one generation call.
// Text always precedes every image attachment; image order is
// significant and preserved on the wire.
type GenerationRequest struct {
	SystemInstruction string
	Text              string
	Images            []ImagePart
}

// GenerationResult is the value-typed outcome of a generation call.
// Failures never escape the client as errors; they land here.
type GenerationResult struct {
	Success   bool      `json:"success"`
	Prompt    string    `json:"prompt,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Provider is a generative text backend. Initialize receives the
// provider-specific config map (api_key, default_model, base_url).
type Provider interface {
	Initialize(config map[string]string) error
	Name() string
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// ProviderFactory constructs an uninitialized provider.
type ProviderFactory func() Provider

var providers = make(map[string]ProviderFactory)

// Register registers a provider factory under a name. Providers call
// this from init.
func Register(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates and initializes the named provider.
func NewProvider(name string, config map[string]string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, errors.New("unknown provider: " + name)
	}
	provider := factory()
	if err := provider.Initialize(config); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListProviders returns all registered provider names.
func ListProviders() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	return names
}
