package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FilePrefs is a string key-value store persisted as one JSON object.
// The file is read once on open and rewritten atomically on every Set.
type FilePrefs struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// OpenFilePrefs loads path. A missing file yields an empty store.
func OpenFilePrefs(path string) (*FilePrefs, error) {
	p := &FilePrefs{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return p, nil
	case err != nil:
		return nil, fmt.Errorf("read prefs %s: %w", path, err)
	}
	if len(data) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("decode prefs %s: %w", path, err)
	}
	return p, nil
}

// Get returns the value stored under key.
func (p *FilePrefs) Get(_ context.Context, key string) (string, bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok, nil
}

// Set stores value under key and persists the file.
func (p *FilePrefs) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	prev, had := p.values[key]
	p.values[key] = value
	if err := p.saveLocked(); err != nil {
		if had {
			p.values[key] = prev
		} else {
			delete(p.values, key)
		}
		return err
	}
	return nil
}

// saveLocked writes to a temp file in the same directory then renames it
// over the target.
func (p *FilePrefs) saveLocked() error {
	data, err := json.MarshalIndent(p.values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".festgrid-prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, p.path)
}
