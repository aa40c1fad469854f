package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileRepository stores each payload as <id>.json under a data
// directory. This is the default driver: a flat-file, id-keyed blob
// store with no database behind it.
type fileRepository struct {
	dir string
}

// NewFileRepository creates the data directory if needed and returns a
// file-backed payload repository.
func NewFileRepository(dir string) (PayloadRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create payload dir: %w", err)
	}
	return &fileRepository{dir: dir}, nil
}

func (r *fileRepository) Put(ctx context.Context, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := NewPayloadID()
	if err := os.WriteFile(r.path(id), body, 0o644); err != nil {
		return "", fmt.Errorf("write payload %s: %w", id, err)
	}
	return id, nil
}

func (r *fileRepository) Get(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidPayloadID(id) {
		return nil, ErrNotFound
	}

	body, err := os.ReadFile(r.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read payload %s: %w", id, err)
	}
	return body, nil
}

func (r *fileRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return 0, fmt.Errorf("read payload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(before) {
			if err := os.Remove(filepath.Join(r.dir, entry.Name())); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (r *fileRepository) Close() error { return nil }

func (r *fileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".json")
}
