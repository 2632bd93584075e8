// Package extraction turns free-form note text into structured task
// candidates. It supports remote LLM providers (Anthropic, OpenAI) with
// an unconditional fallback to a deterministic rule-based splitter, so
// a caller always receives a bounded candidate list.
package extraction

import "context"

// Provider identifies a candidate backend.
type Provider string

const (
	ProviderMock      Provider = "mock"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Config holds extraction configuration. It is injected explicitly;
// nothing in this package reads the process environment at call time.
type Config struct {
	// ForceMock pins the selector to the rule-based splitter regardless
	// of configured credentials.
	ForceMock bool `koanf:"force_mock"`

	// TimeoutSeconds bounds each remote provider call. Zero means the
	// default of 30 seconds.
	TimeoutSeconds int `koanf:"timeout_seconds"`

	Anthropic ProviderConfig `koanf:"anthropic"`
	OpenAI    ProviderConfig `koanf:"openai"`
}

// ProviderConfig holds per-provider connection settings.
type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

// completer is the single-method abstraction over a remote LLM backend:
// given a system prompt and a user prompt, produce raw model text.
type completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
