package callback

import (
	"context"
	"time"

	"github.com/shortform/ai-video-worker/internal/job"
)

// Client reports job outcomes to the backend and persists the optional
// result artifact. Delivery outcomes are booleans: a terminal rejection is
// a result, not an error.
type Client interface {
	DeliverSuccess(ctx context.Context, jc job.Context, resultKey string, elapsed time.Duration) bool
	DeliverFailure(ctx context.Context, jc job.Context, kind job.ErrorKind, message string) bool
	UploadResult(ctx context.Context, jc job.Context) string
	Health(ctx context.Context) bool
}
