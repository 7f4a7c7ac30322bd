package executor

import "context"

// Executor runs external commands (ffmpeg, ffprobe). Behind an interface so
// pipeline tests can substitute a fake.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
