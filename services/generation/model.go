// Package generation wraps the hosted generative models that write answers.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Model produces a completion for a single prompt. Calls may fail, stall,
// or return empty text; callers bound and check them.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrNotConfigured is returned by New when the selected provider has no key.
var ErrNotConfigured = errors.New("generative model not configured")

// Options selects and configures a provider.
type Options struct {
	Provider     string // "gemini" or "openai"
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// New builds the configured model. The returned close function releases
// provider resources and is safe to call when err is non-nil.
func New(ctx context.Context, opts Options) (Model, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(opts.Provider) {
	case "", "gemini":
		if opts.GeminiAPIKey == "" {
			return nil, noop, fmt.Errorf("gemini: %w", ErrNotConfigured)
		}
		g, err := NewGeminiClient(ctx, opts.GeminiAPIKey, opts.GeminiModel)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	case "openai":
		if opts.OpenAIAPIKey == "" {
			return nil, noop, fmt.Errorf("openai: %w", ErrNotConfigured)
		}
		return NewOpenAIClient(opts.OpenAIAPIKey, opts.OpenAIModel), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown LLM provider %q: %w", opts.Provider, ErrNotConfigured)
	}
}
