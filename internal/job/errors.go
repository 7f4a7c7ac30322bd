package job

import (
	"errors"
	"strings"
)

// ErrorKind is the closed set of failure classifications reported to the
// backend and attached to diagnostics.
type ErrorKind string

const (
	KindStorageFetch   ErrorKind = "S3_DOWNLOAD_FAILED"
	KindInvalidFormat  ErrorKind = "INVALID_FILE_FORMAT"
	KindExtraction     ErrorKind = "FFMPEG_FAILED"
	KindSTTTimeout     ErrorKind = "STT_TIMEOUT"
	KindSTTBadResponse ErrorKind = "STT_BAD_RESPONSE"
	KindLLMTimeout     ErrorKind = "LLM_TIMEOUT"
	KindLLMBadResponse ErrorKind = "LLM_BAD_RESPONSE"
	KindCallback       ErrorKind = "CALLBACK_FAILED"
	KindUnknown        ErrorKind = "UNKNOWN_ERROR"
)

// StageError attaches an ErrorKind to a stage failure so classification is
// a lookup, not a text search.
type StageError struct {
	Kind ErrorKind
	Err  error
}

func (e *StageError) Error() string {
	return string(e.Kind) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the given kind.
func NewStageError(kind ErrorKind, err error) *StageError {
	return &StageError{Kind: kind, Err: err}
}

// Classify maps any failure to an ErrorKind. Stage errors carry their kind;
// anything else falls back to keyword matching on the error text, stage
// keywords first, then timeout vs bad-response within the stage.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "s3") || strings.Contains(msg, "download"):
		return KindStorageFetch
	case strings.Contains(msg, "ffmpeg") || strings.Contains(msg, "audio"):
		return KindExtraction
	case strings.Contains(msg, "stt") || strings.Contains(msg, "speech") || strings.Contains(msg, "transcri"):
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "rate limit") {
			return KindSTTTimeout
		}
		return KindSTTBadResponse
	case strings.Contains(msg, "llm") || strings.Contains(msg, "summar"):
		if strings.Contains(msg, "timeout") || strings.Contains(msg, "rate limit") {
			return KindLLMTimeout
		}
		return KindLLMBadResponse
	case strings.Contains(msg, "callback"):
		return KindCallback
	default:
		return KindUnknown
	}
}
