package prefs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"
)

// FileKV stores every key in one JSON object file. Writes replace the file
// atomically, so a crash never leaves a torn file behind. A sibling ".lock"
// file is flocked around every access, shared for reads and exclusive for
// read-modify-write, so several processes can share one store.
type FileKV struct {
	path string
	mu   sync.Mutex
}

// NewFileKV returns a FileKV backed by path. The file and its directory are
// created on first write.
func NewFileKV(path string) *FileKV {
	return &FileKV{path: path}
}

// Path returns the backing file path.
func (f *FileKV) Path() string { return f.path }

func (f *FileKV) lockName() string { return f.path + ".lock" }

// Get implements KV.
func (f *FileKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	unlock, err := lockPath(ctx, f.lockName(), false)
	if err != nil {
		return "", false, err
	}
	defer unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}

	v, ok := values[key]

	return v, ok, nil
}

// Set implements KV.
func (f *FileKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	unlock, err := lockPath(ctx, f.lockName(), true)
	if err != nil {
		return err
	}
	defer unlock()

	values, err := f.read()
	if errors.Is(err, ErrKVCorrupt) {
		// Overwrite a corrupt file rather than refusing to save forever.
		values = map[string]string{}
	} else if err != nil {
		return err
	}

	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o750); err != nil {
		return fmt.Errorf("create dir for %s: %w", f.path, err)
	}

	if err := atomic.WriteFile(f.path, bytes.NewReader(append(data, '\n'))); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}

	return nil
}

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}

	values := map[string]string{}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrKVCorrupt, f.path, err)
	}

	return values, nil
}
