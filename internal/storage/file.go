package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewFileStore creates a Store backed by one JSON file per slot under dir.
func NewFileStore(dir string, logger *zap.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return newSnapshotStore(&fileBackend{dir: dir}, logger), nil
}

type fileBackend struct {
	dir string
}

func (b *fileBackend) path(slot string) string {
	return filepath.Join(b.dir, slot+".json")
}

func (b *fileBackend) get(ctx context.Context, slot string) ([]byte, error) {
	data, err := os.ReadFile(b.path(slot))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// set replaces the slot file via write-to-temp-and-rename so each slot is
// replaced atomically at storage-key granularity.
func (b *fileBackend) set(ctx context.Context, slot string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, slot+"-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), b.path(slot))
}

func (b *fileBackend) close() error {
	return nil
}
