package callback

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/shortform/ai-video-worker/internal/job"
)

// UploadResult persists the result document to the result bucket,
// best-effort: a job with no content to persist is skipped, and any
// storage failure only costs the artifact, never the job.
func (c *implClient) UploadResult(ctx context.Context, jc job.Context) string {
	if jc.Transcript == "" && jc.Summary == "" {
		return ""
	}

	doc := job.ResultDocument{
		JobID:      jc.JobID,
		UserID:     jc.UserID,
		Bucket:     jc.Bucket,
		Key:        jc.Key,
		Transcript: jc.Transcript,
		Summary:    jc.Summary,
		CreatedAt:  jc.CreatedAt,
		Metadata: map[string]string{
			"model":      c.model,
			"stt_engine": "clova",
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		c.logger.Warn(ctx, "marshal result document: %v", err)
		return ""
	}

	base := path.Base(jc.Key)
	stem := strings.TrimSuffix(base, path.Ext(base))
	resultKey := fmt.Sprintf("summary/summary_%s.json", stem)

	err = c.retrier.Do(ctx, "result upload", func() error {
		return c.store.Put(ctx, c.resultBucket, resultKey, data, "application/json; charset=utf-8")
	})
	if err != nil {
		c.logger.Warn(ctx, "result upload failed (continuing without artifact): %v", err)
		return ""
	}

	c.logger.Info(ctx, "result uploaded: s3://%s/%s (%d bytes)", c.resultBucket, resultKey, len(data))
	return resultKey
}
