package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/retry"
)

const summaryPrompt = `The following is the speech transcript of a short-form video.
Write a concise, useful summary a viewer can scan quickly.

Requirements:
- Capture the core message and key points
- Highlight important keywords or topics
- Structure the text so it reads fast
- Keep it to two or three short paragraphs

Transcript:
---
%s
---`

const tagsPrompt = `From the following video transcript, extract exactly three topical
hashtags. Answer with one hashtag per line, nothing else, each starting
with the # character.

Transcript:
---
%s
---`

// Summarize validates and truncates the transcript, then asks the model
// for a narrative summary and a topical tag line in two independent calls.
func (s *implSummarizer) Summarize(ctx context.Context, jc job.Context) (job.Context, error) {
	if err := s.validateTranscript(jc.Transcript); err != nil {
		return jc, job.NewStageError(job.KindLLMBadResponse, err)
	}

	transcript := truncateTranscript(jc.Transcript, s.limits.TruncateChars)
	if len(transcript) < len(jc.Transcript) {
		s.logger.Warn(ctx, "transcript truncated from %d to %d chars", len(jc.Transcript), len(transcript))
	}

	s.logger.Info(ctx, "generating summary (%d transcript chars)", len(transcript))
	summary, err := s.generateWithRetry(ctx, "llm summary", fmt.Sprintf(summaryPrompt, transcript))
	if err != nil {
		return jc, job.NewStageError(llmErrorKind(err), err)
	}

	tagsRaw, err := s.generateWithRetry(ctx, "llm tags", fmt.Sprintf(tagsPrompt, transcript))
	if err != nil {
		return jc, job.NewStageError(llmErrorKind(err), err)
	}

	tags := normalizeTags(tagsRaw)
	jc.Summary = strings.TrimSpace(summary) + "\n\n" + strings.Join(tags, " ")

	s.logger.Info(ctx, "summary generated: %d chars, tags: %v", len(jc.Summary), tags)
	return jc, nil
}

// generateWithRetry runs one model call through the retry executor,
// marking rejections that retrying cannot fix as permanent.
func (s *implSummarizer) generateWithRetry(ctx context.Context, op, prompt string) (string, error) {
	var out string
	err := s.retrier.Do(ctx, op, func() error {
		text, err := s.gen.generate(ctx, prompt)
		if err != nil {
			if isTerminalLLMError(err) {
				return retry.Permanent(err)
			}
			return err
		}
		out = text
		return nil
	})
	return out, err
}

func (s *implSummarizer) validateTranscript(transcript string) error {
	trimmed := strings.TrimSpace(transcript)
	if len(trimmed) < s.limits.MinChars {
		return fmt.Errorf("transcript too short for summarization: %d chars", len(trimmed))
	}
	if len(transcript) > s.limits.MaxChars {
		return fmt.Errorf("transcript exceeds summarization limit: %d chars", len(transcript))
	}
	return nil
}

// Rate-limit and server-side failures are transient; invalid requests and
// auth failures are not. The SDK only exposes these through error text.
func isTerminalLLMError(err error) bool {
	if isRetryableLLMError(err) {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{
		"400", "INVALID_ARGUMENT",
		"401", "UNAUTHENTICATED",
		"403", "PERMISSION_DENIED",
		"404", "NOT_FOUND",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isRetryableLLMError(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"429", "quota", "RESOURCE_EXHAUSTED", "timeout", "deadline"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// llmErrorKind separates timeout/rate-limit failures from bad responses
// for the failure callback.
func llmErrorKind(err error) job.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return job.KindLLMTimeout
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline") ||
		strings.Contains(msg, "429") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") {
		return job.KindLLMTimeout
	}
	return job.KindLLMBadResponse
}
