package media

import (
	"context"

	"github.com/shortform/ai-video-worker/internal/job"
)

// Prepare downloads the source video and extracts its normalized audio
// track. Both local paths are recorded on the returned context; the caller
// owns their cleanup.
func (p *implPreparer) Prepare(ctx context.Context, jc job.Context) (job.Context, error) {
	jc, err := p.fetch(ctx, jc)
	if err != nil {
		return jc, err
	}

	if seconds, err := p.duration(ctx, jc.LocalVideoPath); err == nil {
		p.logger.Info(ctx, "source duration: %.1fs", seconds)
	} else {
		p.logger.Debug(ctx, "ffprobe duration unavailable: %v", err)
	}

	return p.extract(ctx, jc)
}
