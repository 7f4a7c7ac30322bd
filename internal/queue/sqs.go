package queue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type implConsumer struct {
	client            *sqs.Client
	queueURL          string
	waitTime          int32
	visibilityTimeout int32
}

// New creates a Consumer backed by SQS long polling.
func New(cfg aws.Config, queueURL string, waitTimeSeconds, visibilityTimeoutSeconds int) Consumer {
	return &implConsumer{
		client:            sqs.NewFromConfig(cfg),
		queueURL:          queueURL,
		waitTime:          int32(waitTimeSeconds),
		visibilityTimeout: int32(visibilityTimeoutSeconds),
	}
}

func (c *implConsumer) Receive(ctx context.Context) (*Message, error) {
	out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(c.queueURL),
		MaxNumberOfMessages: 1,
		WaitTimeSeconds:     c.waitTime,
		VisibilityTimeout:   c.visibilityTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("sqs receive: %w", err)
	}
	if len(out.Messages) == 0 {
		return nil, nil
	}

	m := out.Messages[0]
	return &Message{
		MessageID:     aws.ToString(m.MessageId),
		ReceiptHandle: aws.ToString(m.ReceiptHandle),
		Body:          aws.ToString(m.Body),
	}, nil
}

func (c *implConsumer) Delete(ctx context.Context, receiptHandle string) error {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("sqs delete: %w", err)
	}
	return nil
}
