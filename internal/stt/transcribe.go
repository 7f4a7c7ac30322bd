package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/retry"
)

// Audio artifact bounds: anything outside is a broken extraction, not worth
// a network attempt.
const (
	minAudioSize = 1024              // 1 KiB
	maxAudioSize = 100 * 1024 * 1024 // 100 MiB
)

type sttResponse struct {
	Text string `json:"text"`
}

// errRateLimited marks a 429. Rate limiting counts as a timeout for the
// failure callback, same as the summarization stage.
var errRateLimited = errors.New("stt rate limit exceeded")

// Transcribe validates the extracted audio and submits it to the STT
// service through the retry executor. The transcript is stored on the
// returned context.
func (t *implTranscriber) Transcribe(ctx context.Context, jc job.Context) (job.Context, error) {
	if err := validateAudioFile(jc.LocalAudioPath); err != nil {
		return jc, job.NewStageError(job.KindSTTBadResponse,
			fmt.Errorf("audio validation: %w", err))
	}

	audio, err := os.ReadFile(jc.LocalAudioPath)
	if err != nil {
		return jc, job.NewStageError(job.KindSTTBadResponse,
			fmt.Errorf("read audio: %w", err))
	}

	t.logger.Info(ctx, "starting transcription: %s (%d bytes)", jc.LocalAudioPath, len(audio))

	var transcript string
	var timedOut bool
	err = t.retrier.Do(ctx, "stt request", func() error {
		text, err := t.call(ctx, audio)
		if err != nil {
			if isTimeout(err) || errors.Is(err, errRateLimited) {
				timedOut = true
			}
			return err
		}
		transcript = text
		return nil
	})
	if err != nil {
		kind := job.KindSTTBadResponse
		if timedOut || isTimeout(err) {
			kind = job.KindSTTTimeout
		}
		return jc, job.NewStageError(kind, err)
	}

	t.logger.Info(ctx, "transcription complete: %d chars", len(transcript))
	jc.Transcript = transcript
	return jc, nil
}

// call performs one STT attempt. 4xx responses other than 429 are terminal;
// everything else, an empty transcript included, is retryable.
func (t *implTranscriber) call(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(audio))
	if err != nil {
		return "", retry.Permanent(fmt.Errorf("build stt request: %w", err))
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-NCP-APIGW-API-KEY-ID", t.apiKeyID)
	req.Header.Set("X-NCP-APIGW-API-KEY", t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stt request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read stt response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errRateLimited
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("stt server error: %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return "", retry.Permanent(fmt.Errorf("stt rejected request: %d - %s", resp.StatusCode, body))
	}

	var parsed sttResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("invalid stt response: %w", err)
	}
	if parsed.Text == "" {
		// A transiently-empty result is worth retrying.
		return "", fmt.Errorf("empty transcript from stt")
	}

	return parsed.Text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// validateAudioFile checks the artifact's structural integrity: exists,
// sane size, RIFF/WAVE header.
func validateAudioFile(path string) error {
	if path == "" {
		return fmt.Errorf("audio path not set")
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("audio file not found: %w", err)
	}
	if info.Size() < minAudioSize {
		return fmt.Errorf("audio file too small: %d bytes", info.Size())
	}
	if info.Size() > maxAudioSize {
		return fmt.Errorf("audio file too large: %d bytes", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 12)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("read audio header: %w", err)
	}
	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return fmt.Errorf("audio file is not a WAV container")
	}

	return nil
}
