package callback

import (
	"net/http"
	"strings"
	"time"

	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/retry"
	"github.com/shortform/ai-video-worker/internal/storage"
)

type implClient struct {
	baseURL      string
	token        string
	appEnv       string
	model        string
	resultBucket string
	store        storage.Store
	client       *http.Client
	retrier      *retry.Executor
	logger       logger.Logger
}

// New creates a backend callback Client. model only feeds the metadata
// reported alongside results.
func New(baseURL, token, appEnv, model, resultBucket string, store storage.Store, retrier *retry.Executor, log logger.Logger) Client {
	return &implClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		appEnv:       appEnv,
		model:        model,
		resultBucket: resultBucket,
		store:        store,
		client:       &http.Client{Timeout: 30 * time.Second},
		retrier:      retrier,
		logger:       log,
	}
}
