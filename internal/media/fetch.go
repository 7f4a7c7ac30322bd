package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shortform/ai-video-worker/internal/job"
	"github.com/shortform/ai-video-worker/internal/retry"
	"github.com/shortform/ai-video-worker/internal/storage"
)

// Container formats ffmpeg reliably demuxes. Anything else is a permanent
// input defect, rejected before any network call.
var videoExtensions = map[string]struct{}{
	".mp4": {}, ".m4v": {}, ".mov": {}, ".qt": {},
	".avi": {}, ".divx": {},
	".mkv": {}, ".webm": {},
	".flv": {}, ".f4v": {},
	".wmv": {}, ".asf": {},
	".mpg": {}, ".mpeg": {}, ".m2v": {},
	".3gp": {}, ".3g2": {},
	".ts": {}, ".mts": {}, ".m2ts": {},
	".vob": {},
	".ogv": {}, ".ogg": {},
}

// Anything that is not a letter, digit, underscore, dot or dash gets
// replaced. Unicode letters stay, matching what upload names actually
// contain.
var unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}_.-]`)

const maxStemLength = 200

// fetch validates the object key and downloads the video to the temp dir.
func (p *implPreparer) fetch(ctx context.Context, jc job.Context) (job.Context, error) {
	ext := strings.ToLower(path.Ext(jc.Key))
	if _, ok := videoExtensions[ext]; !ok {
		return jc, job.NewStageError(job.KindInvalidFormat,
			fmt.Errorf("unsupported container format %q for key %s", ext, jc.Key))
	}

	dest := filepath.Join(p.tempDir, safeFileName(jc.Key))
	p.logger.Info(ctx, "downloading s3://%s/%s -> %s", jc.Bucket, jc.Key, dest)

	err := p.retrier.Do(ctx, "s3 download", func() error {
		err := p.store.Download(ctx, jc.Bucket, jc.Key, dest)
		if err != nil && storage.IsClientError(err) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return jc, job.NewStageError(job.KindStorageFetch, err)
	}

	if info, err := os.Stat(dest); err == nil {
		p.logger.Info(ctx, "download complete: %s (%d bytes)", dest, info.Size())
	}

	jc.LocalVideoPath = dest
	return jc, nil
}

// safeFileName derives a filesystem-safe local name from an object key:
// base name only, unsafe characters replaced, stem capped, extension
// lower-cased and preserved.
func safeFileName(key string) string {
	base := path.Base(key)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if len(stem) > maxStemLength {
		stem = stem[:maxStemLength]
	}
	stem = unsafeChars.ReplaceAllString(stem, "_")

	return stem + strings.ToLower(ext)
}
