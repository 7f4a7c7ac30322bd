package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shortform/ai-video-worker/internal/job"
)

// filterChain is one extraction attempt. Chains are tried in order and the
// first one that produces an output file wins.
type filterChain struct {
	name string
	af   string // value for ffmpeg -af, empty means no filtering
}

// Primary chain uses afftdn (adaptive FFT denoiser). Some builds lack it,
// so anlmdn is the second choice, and the last resort skips noise reduction
// entirely and only normalizes the track.
var filterChains = []filterChain{
	{name: "afftdn", af: "highpass=f=200,lowpass=f=3800,afftdn"},
	{name: "anlmdn", af: "highpass=f=200,lowpass=f=3800,anlmdn"},
	{name: "none", af: ""},
}

// extract converts the downloaded video into a mono 16kHz 16-bit PCM WAV.
func (p *implPreparer) extract(ctx context.Context, jc job.Context) (job.Context, error) {
	if jc.LocalVideoPath == "" {
		return jc, job.NewStageError(job.KindExtraction,
			fmt.Errorf("audio extraction requires a downloaded video"))
	}

	safe := safeFileName(jc.Key)
	audioPath := filepath.Join(p.tempDir, strings.TrimSuffix(safe, filepath.Ext(safe))+".wav")

	var lastErr error
	for _, chain := range filterChains {
		p.logger.Info(ctx, "extracting audio (filter chain: %s): %s", chain.name, jc.LocalVideoPath)

		if _, err := p.exec.Execute(ctx, "ffmpeg", extractArgs(jc.LocalVideoPath, audioPath, chain)...); err != nil {
			p.logger.Warn(ctx, "ffmpeg filter chain %s failed: %v", chain.name, err)
			lastErr = err
			continue
		}

		if _, err := os.Stat(audioPath); err != nil {
			lastErr = fmt.Errorf("ffmpeg reported success but output missing: %w", err)
			p.logger.Warn(ctx, "filter chain %s left no output file", chain.name)
			continue
		}

		p.logger.Info(ctx, "audio extracted (%s): %s", chain.name, audioPath)
		jc.LocalAudioPath = audioPath
		return jc, nil
	}

	return jc, job.NewStageError(job.KindExtraction,
		fmt.Errorf("all ffmpeg filter chains failed: %w", lastErr))
}

// extractArgs builds the ffmpeg invocation for one filter chain.
// -vn drops video, -ac 1 downmixes to mono, -ar 16000 resamples to the rate
// the STT service expects, pcm_s16le encodes 16-bit linear PCM.
func extractArgs(videoPath, audioPath string, chain filterChain) []string {
	args := []string{
		"-i", videoPath,
		"-vn",
	}
	if chain.af != "" {
		args = append(args, "-af", chain.af)
	}
	args = append(args,
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	)
	return args
}

// duration probes the source's play time in seconds, best-effort metadata
// for logs and callback meta.
func (p *implPreparer) duration(ctx context.Context, path string) (float64, error) {
	out, err := p.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, err
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", out, err)
	}
	return seconds, nil
}
