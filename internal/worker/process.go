package worker

import (
	"context"
	"os"
	"time"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/logger"
)

// Result is the outcome of one job execution. Succeeded means every stage
// and the final delivery call succeeded; Delivered means the backend
// received its one terminal callback (success or failure) and the queue
// message can be acknowledged.
type Result struct {
	Succeeded bool
	Delivered bool
	Kind      job.ErrorKind
	Elapsed   time.Duration
}

// Process runs one job through prepare, transcribe, summarize and deliver.
// Any stage failure short-circuits into the failure-delivery path with the
// classified error kind. Local artifacts are cleaned up exactly once,
// after delivery, regardless of outcome.
func (w *Worker) Process(ctx context.Context, jc job.Context) Result {
	start := time.Now()
	log := w.logger.WithFields(map[string]interface{}{
		"job_id":  jc.JobID,
		"user_id": jc.UserID,
	})
	log.Info(ctx, "job started: s3://%s/%s", jc.Bucket, jc.Key)

	current := jc
	defer func() {
		w.cleanup(ctx, log, current)
	}()

	var err error
	if current, err = w.preparer.Prepare(ctx, current); err != nil {
		return w.fail(ctx, log, current, start, err)
	}
	if current, err = w.transcriber.Transcribe(ctx, current); err != nil {
		return w.fail(ctx, log, current, start, err)
	}
	if current, err = w.summarizer.Summarize(ctx, current); err != nil {
		return w.fail(ctx, log, current, start, err)
	}

	resultKey := w.callbacks.UploadResult(ctx, current)

	elapsed := time.Since(start)
	delivered := w.callbacks.DeliverSuccess(ctx, current, resultKey, elapsed)
	if delivered {
		log.Info(ctx, "job done in %dms (transcript: %d chars, summary: %d chars)",
			elapsed.Milliseconds(), len(current.Transcript), len(current.Summary))
	} else {
		log.Warn(ctx, "job processed but success callback undelivered")
	}

	return Result{Succeeded: delivered, Delivered: delivered, Elapsed: elapsed}
}

func (w *Worker) fail(ctx context.Context, log logger.Logger, jc job.Context, start time.Time, err error) Result {
	kind := job.Classify(err)
	elapsed := time.Since(start)
	log.Error(ctx, "job failed after %dms (%s): %v", elapsed.Milliseconds(), kind, err)

	delivered := w.callbacks.DeliverFailure(ctx, jc, kind, err.Error())
	if !delivered {
		log.Warn(ctx, "failure callback undelivered, job will be redelivered")
	}

	return Result{Succeeded: false, Delivered: delivered, Kind: kind, Elapsed: elapsed}
}

// cleanup removes the job's ephemeral local artifacts. Missing files are
// fine; real removal failures are logged and never change the job outcome.
func (w *Worker) cleanup(ctx context.Context, log logger.Logger, jc job.Context) {
	for _, path := range []string{jc.LocalVideoPath, jc.LocalAudioPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn(ctx, "failed to remove temp file %s: %v", path, err)
		} else {
			log.Debug(ctx, "removed temp file: %s", path)
		}
	}
}
