package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	"github.com/shortform/ai-video-worker/internal/callback"
	"github.com/shortform/ai-video-worker/internal/config"
	"github.com/shortform/ai-video-worker/internal/llm"
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/media"
	"github.com/shortform/ai-video-worker/internal/queue"
	"github.com/shortform/ai-video-worker/internal/retry"
	"github.com/shortform/ai-video-worker/internal/storage"
	"github.com/shortform/ai-video-worker/internal/stt"
	"github.com/shortform/ai-video-worker/internal/worker"
	"github.com/shortform/ai-video-worker/pkg/executor"
)

func main() {
	// .env is a local development convenience, absent in deployment
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(context.Background(), "starting ai-video-worker (env=%s, region=%s)", cfg.AppEnv, cfg.AWS.Region)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Error(ctx, "load aws config: %v", err)
		os.Exit(1)
	}

	retrier := retry.New(cfg.Retry.MaxRetries, time.Duration(cfg.Retry.DelaySeconds)*time.Second, log)
	store := storage.New(awsCfg)
	consumer := queue.New(awsCfg, cfg.SQS.QueueURL, cfg.SQS.WaitTimeSeconds, cfg.SQS.VisibilityTimeoutSeconds)

	preparer := media.New(store, executor.New(), retrier, cfg.Processing.TempDir, log)
	transcriber := stt.New(cfg.STT.URL, cfg.STT.APIKeyID, cfg.STT.APIKey, retrier, log)
	summarizer := llm.New(cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, cfg.LLM.MaxTokens, llm.Limits{
		MinChars:      cfg.Processing.TranscriptMinChars,
		MaxChars:      cfg.Processing.TranscriptMaxChars,
		TruncateChars: cfg.Processing.TruncateLimitChars,
	}, retrier, log)
	callbacks := callback.New(cfg.Backend.BaseURL, cfg.Backend.InternalToken, cfg.AppEnv,
		cfg.LLM.Model, cfg.AWS.ResultBucket, store, retrier, log)

	w := worker.New(consumer, preparer, transcriber, summarizer, callbacks, log)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info(ctx, "received signal %s, shutting down after current job", sig)
		cancel()
	}()

	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error(ctx, "worker stopped: %v", err)
		os.Exit(1)
	}
	log.Info(context.Background(), "worker stopped")
}
