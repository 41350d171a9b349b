package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/providers"
)

type fakeProvider struct {
	reply  string
	err    error
	config providers.Config
	calls  int
}

func (f *fakeProvider) ExtractText(ctx context.Context, config providers.Config) (string, error) {
	f.calls++
	f.config = config
	return f.reply, f.err
}

func TestGenerate(t *testing.T) {
	fake := &fakeProvider{reply: "## 問題\n### 問題1\nQ\n---\n## 解答・解説\nA\n---\n## 指導のポイント\nG"}
	s := NewServiceWithProviders(map[string]providers.Provider{"fake": fake})

	imgs := []models.Image{
		{ID: "a", MIMEType: "image/png", Data: []byte{1}},
		{ID: "b", MIMEType: "image/jpeg", Data: []byte{2}},
	}
	result, err := s.Generate(context.Background(), imgs, Options{Provider: "fake", Model: "m1", APIKey: "k"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if fake.calls != 1 {
		t.Errorf("Expected exactly one provider call, got %d", fake.calls)
	}
	if fake.config.Prompt != Prompt || fake.config.Model != "m1" || fake.config.APIKey != "k" {
		t.Errorf("Unexpected provider config: %+v", fake.config)
	}
	if len(fake.config.Images) != 2 || fake.config.Images[1].MIMEType != "image/jpeg" {
		t.Errorf("Images not passed in order: %+v", fake.config.Images)
	}

	if result.Provider != "fake" || result.Model != "m1" {
		t.Errorf("Unexpected provider/model: %s/%s", result.Provider, result.Model)
	}
	if result.Sections.Problems != "### 問題1\nQ" || result.Sections.Solutions != "A" || result.Sections.Guide != "G" {
		t.Errorf("Unexpected sections: %+v", result.Sections)
	}
}

func TestGenerateErrors(t *testing.T) {
	failing := &fakeProvider{err: errors.New("boom")}
	s := NewServiceWithProviders(map[string]providers.Provider{"fake": failing})
	img := []models.Image{{MIMEType: "image/png", Data: []byte{1}}}

	if _, err := s.Generate(context.Background(), nil, Options{Provider: "fake"}); !errors.Is(err, ErrNoImages) {
		t.Errorf("Expected ErrNoImages, got %v", err)
	}
	if _, err := s.Generate(context.Background(), img, Options{Provider: "nope"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
	if _, err := s.Generate(context.Background(), img, Options{Provider: "fake"}); err == nil {
		t.Error("Expected provider error to be returned")
	}
}

func TestGenerateMalformedReply(t *testing.T) {
	fake := &fakeProvider{reply: "Sorry, I cannot read this image."}
	s := NewServiceWithProviders(map[string]providers.Provider{"fake": fake})

	result, err := s.Generate(context.Background(), []models.Image{{MIMEType: "image/png"}}, Options{Provider: "fake", Model: "m"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Sections != (models.Sections{}) {
		t.Errorf("Expected empty sections, got %+v", result.Sections)
	}
	if result.Text != fake.reply {
		t.Errorf("Raw text should be kept")
	}
}

func TestResolveProvider(t *testing.T) {
	t.Setenv("RUIJI_PROVIDER", "")
	if got := ResolveProvider(""); got != DefaultProvider {
		t.Errorf("Expected %s, got %s", DefaultProvider, got)
	}

	t.Setenv("RUIJI_PROVIDER", "ollama")
	if got := ResolveProvider(""); got != "ollama" {
		t.Errorf("Expected ollama, got %s", got)
	}
	if got := ResolveProvider("openai"); got != "openai" {
		t.Errorf("Expected openai, got %s", got)
	}
}

func TestDefaultModel(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("OPENAI_MODEL", "gpt-4.1")

	tests := []struct {
		provider string
		expected string
	}{
		{"gemini", "gemini-2.5-flash"},
		{"openai", "gpt-4.1"},
		{"unknown", ""},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			if got := DefaultModel(tt.provider); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestOptionsFromSettings(t *testing.T) {
	t.Setenv("RUIJI_PROVIDER", "")

	tests := []struct {
		name     string
		settings models.Settings
		provider string
		model    string
		expected Options
	}{
		{
			name:     "defaults with settings key for default provider",
			settings: models.Settings{APIKey: "k"},
			expected: Options{Provider: "gemini", APIKey: "k"},
		},
		{
			name:     "settings provider and model",
			settings: models.Settings{APIKey: "k", Provider: "openai", Model: "gpt-4o-mini"},
			expected: Options{Provider: "openai", Model: "gpt-4o-mini", APIKey: "k"},
		},
		{
			name:     "request overrides provider so settings key is not sent",
			settings: models.Settings{APIKey: "k", Provider: "gemini", Model: "gemini-2.5-pro"},
			provider: "ollama",
			expected: Options{Provider: "ollama"},
		},
		{
			name:     "request model wins over settings model",
			settings: models.Settings{Provider: "gemini", Model: "gemini-2.5-pro"},
			model:    "gemini-2.5-flash",
			expected: Options{Provider: "gemini", Model: "gemini-2.5-flash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OptionsFromSettings(tt.settings, tt.provider, tt.model); got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
