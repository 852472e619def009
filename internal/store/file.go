package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/leitner/internal/spacedrep"
)

// FileProgressRepo keeps each progress key in its own JSON document,
// progress_<key>.json under Dir. It implements spacedrep.ProgressRepo.
type FileProgressRepo struct {
	Dir string
}

var _ spacedrep.ProgressRepo = (*FileProgressRepo)(nil)

// NewFileProgressRepo creates dir if needed.
func NewFileProgressRepo(dir string) (*FileProgressRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create progress dir: %w", err)
	}
	return &FileProgressRepo{Dir: dir}, nil
}

// Path returns the file that holds key.
func (r *FileProgressRepo) Path(key string) string {
	return filepath.Join(r.Dir, "progress_"+fileSafe(key)+".json")
}

func (r *FileProgressRepo) LoadProgress(_ context.Context, key string) (map[string]spacedrep.CardRecord, error) {
	data, err := os.ReadFile(r.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}
	return spacedrep.DecodeJSON(data)
}

// SaveProgress merges records into the existing document and replaces the
// file atomically. An unreadable existing document is overwritten.
func (r *FileProgressRepo) SaveProgress(ctx context.Context, key string, records map[string]spacedrep.CardRecord) error {
	merged, err := r.LoadProgress(ctx, key)
	if err != nil || merged == nil {
		merged = make(map[string]spacedrep.CardRecord, len(records))
	}
	for id, rec := range records {
		merged[id] = rec
	}
	p, _ := spacedrep.FromRecords(merged)
	data, err := spacedrep.EncodeJSON(p)
	if err != nil {
		return err
	}

	path := r.Path(key)
	tmp, err := os.CreateTemp(r.Dir, ".progress-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close progress: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace progress: %w", err)
	}
	return nil
}

// ResetProgress removes the document for key.
func (r *FileProgressRepo) ResetProgress(_ context.Context, key string) (int64, error) {
	err := os.Remove(r.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("remove progress: %w", err)
	}
	return 1, nil
}

// fileSafe maps a key to a file name fragment. Bytes outside [A-Za-z0-9.-]
// are written as _xx in hex, so distinct keys never share a file.
func fileSafe(key string) string {
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '.':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "_%02x", c)
		}
	}
	return b.String()
}
