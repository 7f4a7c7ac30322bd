package worker

import (
	"github.com/shortform/ai-video-worker/internal/callback"
	"github.com/shortform/ai-video-worker/internal/llm"
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/media"
	"github.com/shortform/ai-video-worker/internal/queue"
	"github.com/shortform/ai-video-worker/internal/stt"
)

// Worker sequences the pipeline for one job at a time and drives the
// queue polling loop.
type Worker struct {
	consumer    queue.Consumer
	preparer    media.Preparer
	transcriber stt.Transcriber
	summarizer  llm.Summarizer
	callbacks   callback.Client
	logger      logger.Logger
}

// New creates a Worker instance.
func New(
	consumer queue.Consumer,
	preparer media.Preparer,
	transcriber stt.Transcriber,
	summarizer llm.Summarizer,
	callbacks callback.Client,
	log logger.Logger,
) *Worker {
	return &Worker{
		consumer:    consumer,
		preparer:    preparer,
		transcriber: transcriber,
		summarizer:  summarizer,
		callbacks:   callbacks,
		logger:      log,
	}
}
