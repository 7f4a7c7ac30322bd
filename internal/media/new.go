package media

import (
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
	"github.com/shortform/ai-video-worker/internal/storage"
	"github.com/shortform/ai-video-worker/pkg/executor"
)

type implPreparer struct {
	store   storage.Store
	exec    executor.Executor
	retrier *retry.Executor
	tempDir string
	logger  logger.Logger
}

// New creates a Preparer instance.
func New(store storage.Store, exec executor.Executor, retrier *retry.Executor, tempDir string, log logger.Logger) Preparer {
	return &implPreparer{
		store:   store,
		exec:    exec,
		retrier: retrier,
		tempDir: tempDir,
		logger:  log,
	}
}
