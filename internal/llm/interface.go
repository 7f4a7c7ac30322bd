package llm

import (
	"context"

	"github.com/shortform/ai-video-worker/internal/job"
)

// Summarizer turns the job's transcript into a narrative summary with a
// trailing topical tag line.
type Summarizer interface {
	Summarize(ctx context.Context, jc job.Context) (job.Context, error)
}
