package export

import (
	"context"
	"os"
	"path/filepath"
)

// Sink receives the exported artifacts, playing the
// role of the browser download.
type Sink interface {
	Deliver(ctx context.Context, name, contentType string, data []byte) error
}

// DirSink writes every artifact as a file of directory Dir,
// replacing existing files.
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(ctx context.Context, name, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.Dir, filepath.Base(name)), data, 0o644)
}
