package stt

import (
	"context"

	"github.com/shortform/ai-video-worker/internal/job"
)

// Transcriber converts the job's extracted audio track into text.
type Transcriber interface {
	Transcribe(ctx context.Context, jc job.Context) (job.Context, error)
}
