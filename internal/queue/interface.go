package queue

import "context"

// Message is one received queue entry. ReceiptHandle acknowledges it;
// failing to Delete before the visibility timeout expires puts it back.
type Message struct {
	MessageID     string
	ReceiptHandle string
	Body          string
}

// Consumer is the queue surface the worker loop consumes.
type Consumer interface {
	// Receive long-polls for at most one message. A nil message with a nil
	// error means the poll window elapsed with nothing to do.
	Receive(ctx context.Context) (*Message, error)
	// Delete acknowledges a processed message.
	Delete(ctx context.Context, receiptHandle string) error
}
