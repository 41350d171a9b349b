package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/worksheet-lab/ruiji/internal/gemini"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/ollama"
	"github.com/worksheet-lab/ruiji/internal/openai"
	"github.com/worksheet-lab/ruiji/internal/providers"
	"github.com/worksheet-lab/ruiji/internal/sections"
)

const (
	DefaultProvider = "gemini"
	temperature     = 0.4
)

var ErrNoImages = errors.New("at least one image is required")

// Options selects the provider, model and credentials for one generation.
// Empty fields fall back to the environment and then to built-in defaults.
type Options struct {
	Provider string
	Model    string
	APIKey   string
}

type Service struct {
	providers map[string]providers.Provider
}

func NewService() *Service {
	return NewServiceWithProviders(map[string]providers.Provider{
		"gemini": gemini.New(),
		"openai": openai.New(),
		"ollama": ollama.New(),
	})
}

// NewServiceWithProviders builds a service over an explicit provider set
func NewServiceWithProviders(p map[string]providers.Provider) *Service {
	return &Service{providers: p}
}

// Generate sends the prompt and images to the model in a single request and
// splits the reply into sections. There is no retry.
func (s *Service) Generate(ctx context.Context, imgs []models.Image, opts Options) (*models.GenerationResult, error) {
	if len(imgs) == 0 {
		return nil, ErrNoImages
	}

	providerName := ResolveProvider(opts.Provider)
	provider, ok := s.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}

	model := opts.Model
	if model == "" {
		model = DefaultModel(providerName)
	}

	config := providers.Config{
		Model:       model,
		Temperature: temperature,
		Prompt:      Prompt,
		APIKey:      opts.APIKey,
		Images:      make([]providers.Image, 0, len(imgs)),
	}
	for _, img := range imgs {
		config.Images = append(config.Images, providers.Image{MIMEType: img.MIMEType, Data: img.Data})
	}

	slog.Info("Generating similar problems", "provider", providerName, "model", model, "images", len(imgs))
	start := time.Now()

	text, err := provider.ExtractText(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate problems with %s: %w", providerName, err)
	}

	result := &models.GenerationResult{
		Text:        text,
		Sections:    sections.Split(text),
		Provider:    providerName,
		Model:       model,
		GeneratedAt: time.Now(),
		Duration:    time.Since(start),
	}

	slog.Info("Generated similar problems",
		"provider", providerName,
		"model", model,
		"length", len(text),
		"duration", result.Duration,
		"has_problems", result.Sections.Problems != "",
		"has_solutions", result.Sections.Solutions != "",
		"has_guide", result.Sections.Guide != "")

	return result, nil
}

// ResolveProvider returns provider, or RUIJI_PROVIDER, or the default provider
func ResolveProvider(provider string) string {
	if provider != "" {
		return provider
	}
	if env := os.Getenv("RUIJI_PROVIDER"); env != "" {
		return env
	}
	return DefaultProvider
}

// DefaultModel returns the model used for provider when none was requested
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.5-flash"
		}
		return model
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "qwen2.5vl:7b"
		}
		return model
	default:
		return ""
	}
}
