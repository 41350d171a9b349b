package providers

import (
	"context"
)

// Image is an encoded image attached to a prompt
type Image struct {
	MIMEType string
	Data     []byte
}

// Config represents the configuration for an LLM provider call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Images      []Image
	// APIKey overrides the provider's environment variable when set
	APIKey string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
