package stt

import (
	"net/http"
	"time"

	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
)

type implTranscriber struct {
	url      string
	apiKeyID string
	apiKey   string
	client   *http.Client
	retrier  *retry.Executor
	logger   logger.Logger
}

// New creates a Transcriber against an octet-stream speech-to-text endpoint.
func New(url, apiKeyID, apiKey string, retrier *retry.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		url:      url,
		apiKeyID: apiKeyID,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 60 * time.Second},
		retrier:  retrier,
		logger:   log,
	}
}
