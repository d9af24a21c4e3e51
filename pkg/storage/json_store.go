package storage

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/pkg/file"
)

// JSONStore keeps the accident log as a JSON array of samples in a single file.
type JSONStore struct {
	path       string
	fileClient file.FileOperations
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string, fileClient file.FileOperations) *JSONStore {
	return &JSONStore{
		path:       path,
		fileClient: fileClient,
	}
}

// Save writes the whole log, replacing the previous file contents.
func (s *JSONStore) Save(log *models.AccidentLog) error {
	if err := s.fileClient.WriteJsonFile(s.path, log); err != nil {
		return fmt.Errorf("%w: save %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

// Load reads the log back from disk. A missing file is an empty log.
func (s *JSONStore) Load() (*models.AccidentLog, error) {
	log := models.NewAccidentLog()
	if err := s.fileClient.ReadJsonFile(s.path, log); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.NewAccidentLog(), nil
		}
		return nil, fmt.Errorf("%w: load %s: %v", ErrPersistence, s.path, err)
	}
	return log, nil
}

// Location returns the file path of the store.
func (s *JSONStore) Location() string {
	return s.path
}
