package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FrameDir writes frames as files in one directory.
type FrameDir struct {
	dir string
}

func NewFrameDir(dir string) *FrameDir {
	return &FrameDir{dir: dir}
}

func (d *FrameDir) Dir() string { return d.dir }

// Put writes data to dir/key through a temporary file, syncing before the
// rename so a returned nil means the frame is on disk.
func (d *FrameDir) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.dir, "."+key+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filepath.Join(d.dir, key))
}

// Discard accepts and drops every frame.
type Discard struct{}

func (Discard) Put(ctx context.Context, key string, data []byte) error {
	return ctx.Err()
}
