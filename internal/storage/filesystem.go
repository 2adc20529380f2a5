package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloo-solutions/docsum/internal/domain"
)

// FileStore keeps each summary in <dir>/<id>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save writes the record to a temporary file and renames it into place so
// readers never observe a partial record.
func (s *FileStore) Save(ctx context.Context, summary *domain.Summary) error {
	if err := domain.ValidateSummary(summary); err != nil {
		return storageError(err)
	}
	if !validID(summary.ID) {
		return storageError(fmt.Errorf("invalid summary id %q", summary.ID))
	}

	data, err := encodeRecord(summary)
	if err != nil {
		return storageError(err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return storageError(fmt.Errorf("failed to create output directory: %w", err))
	}

	tmp, err := os.CreateTemp(s.dir, summary.ID+".*.tmp")
	if err != nil {
		return storageError(fmt.Errorf("failed to create temp file: %w", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return storageError(fmt.Errorf("failed to write summary: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return storageError(fmt.Errorf("failed to close summary file: %w", err))
	}

	if err := os.Rename(tmpName, s.path(summary.ID)); err != nil {
		os.Remove(tmpName)
		return storageError(fmt.Errorf("failed to move summary into place: %w", err))
	}

	return nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*domain.Summary, error) {
	if !validID(id) {
		return nil, domain.ErrSummaryNotFound
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSummaryNotFound
		}
		return nil, storageError(fmt.Errorf("failed to read summary: %w", err))
	}

	summary, err := decodeRecord(id, data)
	if err != nil {
		return nil, storageError(err)
	}
	return summary, nil
}

// validID rejects ids that could escape the store directory.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
