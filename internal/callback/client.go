package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/retry"
)

// DeliverSuccess reports a completed job to the backend.
func (c *implClient) DeliverSuccess(ctx context.Context, jc job.Context, resultKey string, elapsed time.Duration) bool {
	payload := job.CallbackRequest{
		Status:     job.StatusDone,
		Bucket:     jc.Bucket,
		Key:        jc.Key,
		Transcript: jc.Transcript,
		Summary:    jc.Summary,
		ResultKey:  resultKey,
		Meta: map[string]interface{}{
			"duration_ms": elapsed.Milliseconds(),
			"model":       c.model,
			"stt_engine":  "clova",
		},
	}
	return c.deliver(ctx, jc.JobID, payload)
}

// DeliverFailure reports a failed job with its classified error kind.
func (c *implClient) DeliverFailure(ctx context.Context, jc job.Context, kind job.ErrorKind, message string) bool {
	payload := job.CallbackRequest{
		Status:       job.StatusFailed,
		Bucket:       jc.Bucket,
		Key:          jc.Key,
		ErrorCode:    string(kind),
		ErrorMessage: message,
	}
	return c.deliver(ctx, jc.JobID, payload)
}

// deliver POSTs the payload to the job-completion endpoint through the
// retry executor. 4xx responses are terminal; 5xx and network failures
// consume retry budget. The boolean is the delivery outcome.
func (c *implClient) deliver(ctx context.Context, jobID string, payload job.CallbackRequest) bool {
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error(ctx, "marshal callback payload: %v", err)
		return false
	}

	// job ids are object keys and may contain slashes
	endpoint := fmt.Sprintf("%s/internal/jobs/%s/complete", c.baseURL, url.PathEscape(jobID))

	err = c.retrier.Do(ctx, "backend callback", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return retry.Permanent(fmt.Errorf("build callback request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		req.Header.Set("X-Internal-Token", c.token)
		req.Header.Set("User-Agent", "ai-video-worker/"+c.appEnv)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("callback request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return retry.Permanent(fmt.Errorf("callback rejected: %d - %s", resp.StatusCode, respBody))
		default:
			return fmt.Errorf("callback server error: %d", resp.StatusCode)
		}
	})
	if err != nil {
		c.logger.Error(ctx, "callback delivery failed for job %s: %v", jobID, err)
		return false
	}

	c.logger.Info(ctx, "callback delivered for job %s (%s)", jobID, payload.Status)
	return true
}

// Health probes the backend once at startup. Failure is advisory only.
func (c *implClient) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	req.Header.Set("X-Internal-Token", c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
