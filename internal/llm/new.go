package llm

import (
	"context"

	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
)

// generator is the single-call LLM surface. Split out so tests can fake
// the model.
type generator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

// Limits mirrors the transcript validation/truncation configuration.
type Limits struct {
	MinChars      int
	MaxChars      int
	TruncateChars int
}

type implSummarizer struct {
	gen     generator
	retrier *retry.Executor
	limits  Limits
	logger  logger.Logger
}

// New creates a Summarizer backed by the Gemini API.
func New(apiKey, model, baseURL string, maxTokens int, limits Limits, retrier *retry.Executor, log logger.Logger) Summarizer {
	return &implSummarizer{
		gen: &genaiGenerator{
			apiKey:    apiKey,
			model:     model,
			baseURL:   baseURL,
			maxTokens: maxTokens,
		},
		retrier: retrier,
		limits:  limits,
		logger:  log,
	}
}
