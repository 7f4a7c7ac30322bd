package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/logger"
	"github.com/shortform/ai-video-worker/internal/queue"
)

const receiveErrorBackoff = 5 * time.Second

// Run drives the receive-dispatch loop until the context is cancelled.
// One message is handled at a time; the context is checked between
// iterations so an in-flight job always runs to completion.
func (w *Worker) Run(ctx context.Context) error {
	if !w.callbacks.Health(ctx) {
		w.logger.Warn(ctx, "backend health check failed, starting anyway")
	}
	w.logger.Info(ctx, "worker started, polling queue")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "worker stopping: %v", ctx.Err())
			return ctx.Err()
		default:
		}

		msg, err := w.consumer.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info(ctx, "worker stopping: %v", ctx.Err())
				return ctx.Err()
			}
			w.logger.Error(ctx, "queue receive failed: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(receiveErrorBackoff):
			}
			continue
		}
		if msg == nil {
			continue
		}

		w.handle(ctx, msg)
	}
}

// handle parses one queue message and dispatches it. Unparseable
// messages are left on the queue for redelivery; control messages
// (s3:TestEvent and the like) are acknowledged and dropped.
func (w *Worker) handle(ctx context.Context, msg *queue.Message) {
	log := w.logger.WithFields(map[string]interface{}{
		"receive_id": uuid.New().String(),
		"message_id": msg.MessageID,
	})

	jc, ok, err := job.ParseMessage([]byte(msg.Body))
	if err != nil {
		log.Error(ctx, "unparseable message, leaving for redelivery: %v", err)
		return
	}
	if !ok {
		log.Info(ctx, "control message, acknowledging")
		w.ack(ctx, log, msg)
		return
	}

	result := w.Process(ctx, jc)
	if !result.Delivered {
		log.Warn(ctx, "no terminal callback delivered, message left for redelivery")
		return
	}
	w.ack(ctx, log, msg)
	log.Info(ctx, "message acknowledged (succeeded=%v, elapsed=%dms)",
		result.Succeeded, result.Elapsed.Milliseconds())
}

func (w *Worker) ack(ctx context.Context, log logger.Logger, msg *queue.Message) {
	if err := w.consumer.Delete(ctx, msg.ReceiptHandle); err != nil {
		log.Error(ctx, "failed to delete message: %v", err)
	}
}
