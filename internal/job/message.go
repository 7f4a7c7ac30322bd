package job

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// s3Event mirrors the S3 event notification SQS delivers on object upload.
type s3Event struct {
	Records []s3EventRecord `json:"Records"`
}

type s3EventRecord struct {
	EventTime string `json:"eventTime"`
	S3        struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

// ParseMessage builds a job Context from an S3 event notification body.
// The second return is false for control messages (empty or missing
// Records), which the caller acknowledges and skips without running the
// pipeline.
func ParseMessage(body []byte) (Context, bool, error) {
	var event s3Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Context{}, false, fmt.Errorf("parse s3 event: %w", err)
	}

	if len(event.Records) == 0 {
		return Context{}, false, nil
	}

	record := event.Records[0]
	bucket := record.S3.Bucket.Name
	rawKey := record.S3.Object.Key
	if bucket == "" || rawKey == "" {
		return Context{}, false, fmt.Errorf("parse s3 event: record missing bucket or key")
	}

	// S3 event keys arrive URL-encoded (spaces as '+').
	key, err := url.QueryUnescape(rawKey)
	if err != nil {
		return Context{}, false, fmt.Errorf("decode object key %q: %w", rawKey, err)
	}

	return Context{
		JobID:     key,
		UserID:    ownerFromKey(key),
		Bucket:    bucket,
		Key:       key,
		CreatedAt: time.Now(),
	}, true, nil
}

// ownerFromKey extracts the owner segment from videos/{owner}/{file} keys.
// Other layouts have no owner.
func ownerFromKey(key string) string {
	parts := strings.Split(key, "/")
	if len(parts) >= 3 && parts[0] == "videos" {
		return parts[1]
	}
	return ""
}
