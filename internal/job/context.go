package job

import "time"

// Context is the unit of work threaded through the pipeline stages. It is
// passed by value: each stage returns an updated copy and the orchestrator
// owns the authoritative one, so stages never share mutable state.
type Context struct {
	JobID     string
	UserID    string
	Bucket    string
	Key       string
	CreatedAt time.Time

	// Ephemeral local artifacts, removed by the orchestrator's cleanup.
	LocalVideoPath string
	LocalAudioPath string

	// Derived content, empty until the owning stage succeeds.
	Transcript string
	Summary    string
}

// CallbackRequest is the body POSTed to the backend's job-completion
// endpoint. Fields irrelevant to the status are omitted at the wire
// boundary, not null-filled.
type CallbackRequest struct {
	Status       string                 `json:"status"`
	Bucket       string                 `json:"s3_bucket"`
	Key          string                 `json:"s3_key"`
	Transcript   string                 `json:"transcript,omitempty"`
	Summary      string                 `json:"summary,omitempty"`
	ResultKey    string                 `json:"result_s3_key,omitempty"`
	Meta         map[string]interface{} `json:"meta,omitempty"`
	ErrorCode    string                 `json:"error_code,omitempty"`
	ErrorMessage string                 `json:"error_message,omitempty"`
}

// Callback status discriminator values.
const (
	StatusDone   = "DONE"
	StatusFailed = "FAILED"
)

// ResultDocument is the JSON artifact persisted to the result bucket.
type ResultDocument struct {
	JobID      string            `json:"job_id"`
	UserID     string            `json:"user_id,omitempty"`
	Bucket     string            `json:"s3_bucket"`
	Key        string            `json:"s3_key"`
	Transcript string            `json:"transcript,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Metadata   map[string]string `json:"metadata"`
}
