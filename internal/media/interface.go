package media

import (
	"context"

	"github.com/shortform/ai-video-worker/internal/job"
)

// Preparer turns a job's source object into a local, normalized audio
// track: download, container validation, mono 16kHz WAV extraction.
type Preparer interface {
	Prepare(ctx context.Context, jc job.Context) (job.Context, error)
}
