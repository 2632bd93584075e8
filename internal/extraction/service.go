package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/taskweave/internal/task"
)

// systemPrompt is the fixed instruction block sent to remote providers.
const systemPrompt = `You are a task extraction assistant. Given raw text (quick notes), convert them into clear, actionable tasks.

Rules:
- Start each task title with a verb (Call, Send, Plan, Review, etc.)
- Return 1-6 tasks max
- Keep titles short (under 80 chars)
- Set priority 1-5 (5 = most urgent)
- Estimate minutes realistically
- Detect deadlines from the text (today, tomorrow, specific dates)
- Return valid JSON only, no markdown fences

Output format (JSON array):
[
  {
    "title": "string",
    "details": "string or null",
    "priority": number,
    "estimateMinutes": number,
    "dueDate": "ISO string or null"
  }
]`

var (
	extractRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "taskweave_extract_requests_total",
		Help: "Extraction requests by selected provider.",
	}, []string{"provider"})

	extractFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "taskweave_extract_fallbacks_total",
		Help: "Remote extraction calls that fell back to the rule-based splitter.",
	})
)

// DetectProvider selects the backend for a request. It is a pure
// function of configuration: forceMock wins, then a configured
// Anthropic key, then a configured OpenAI key, then mock.
func DetectProvider(cfg Config, forceMock bool) Provider {
	if forceMock || cfg.ForceMock {
		return ProviderMock
	}
	if cfg.Anthropic.APIKey != "" {
		return ProviderAnthropic
	}
	if cfg.OpenAI.APIKey != "" {
		return ProviderOpenAI
	}
	return ProviderMock
}

// Service orchestrates extraction: it selects a backend, calls it, and
// guarantees a clamped candidate list whatever the backend does.
type Service struct {
	cfg      Config
	splitter *Splitter
	clients  map[Provider]completer
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates the extraction service. Remote clients are built
// once from config; a provider without credentials simply has no client
// and is never selected.
func NewService(cfg Config, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	clients := make(map[Provider]completer)

	if cfg.Anthropic.APIKey != "" {
		c, err := newAnthropicClient(cfg.Anthropic, timeout)
		if err != nil {
			return nil, fmt.Errorf("anthropic client: %w", err)
		}
		clients[ProviderAnthropic] = c
	}
	if cfg.OpenAI.APIKey != "" {
		c, err := newOpenAIClient(cfg.OpenAI, timeout)
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		clients[ProviderOpenAI] = c
	}

	return &Service{
		cfg:      cfg,
		splitter: NewSplitter(),
		clients:  clients,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Status reports the current selection and which credentials are
// configured. Booleans only; key material never leaves the config.
type Status struct {
	Provider        Provider `json:"provider"`
	HasAnthropicKey bool     `json:"hasAnthropicKey"`
	HasOpenAIKey    bool     `json:"hasOpenAIKey"`
}

// Status returns the provider selection absent any per-request override.
func (s *Service) Status() Status {
	return Status{
		Provider:        DetectProvider(s.cfg, false),
		HasAnthropicKey: s.cfg.Anthropic.APIKey != "",
		HasOpenAIKey:    s.cfg.OpenAI.APIKey != "",
	}
}

// Extract converts note text into task candidates. It never returns an
// error: any remote failure, timeout, or unrecoverable payload falls
// back silently to the rule-based splitter on the same text. An empty
// normalized list is treated the same as a failed call, so a remote
// provider can never reduce the result below what the splitter yields.
// The returned provider is the one selected, not necessarily the one
// whose output survived.
func (s *Service) Extract(ctx context.Context, text, projectName string, forceMock bool) ([]task.Candidate, Provider) {
	provider := DetectProvider(s.cfg, forceMock)
	extractRequests.WithLabelValues(string(provider)).Inc()

	if provider == ProviderMock {
		return s.splitter.Split(text, s.now()), provider
	}

	client := s.clients[provider]
	raw, err := client.Complete(ctx, systemPrompt, userPrompt(text, projectName))
	if err != nil {
		s.logger.Warn("remote extraction failed, falling back to splitter",
			zap.String("provider", string(provider)),
			zap.Error(err))
		extractFallbacks.Inc()
		return s.splitter.Split(text, s.now()), provider
	}

	candidates := ParseResponse(raw)
	if len(candidates) == 0 {
		s.logger.Warn("remote extraction returned no usable candidates, falling back to splitter",
			zap.String("provider", string(provider)))
		extractFallbacks.Inc()
		return s.splitter.Split(text, s.now()), provider
	}

	return candidates, provider
}

// userPrompt builds the per-request prompt carrying the note text and
// the optional project-name hint.
func userPrompt(text, projectName string) string {
	prompt := fmt.Sprintf("Convert this note into actionable tasks:\n\n%q", text)
	if projectName != "" {
		prompt += "\n\nProject context: " + projectName
	}
	return prompt
}
