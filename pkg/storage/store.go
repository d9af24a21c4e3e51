package storage

import (
	"errors"

	"github.com/benmeehan/accident-agent/internal/models"
)

// ErrPersistence wraps every save/load failure of a Store.
var ErrPersistence = errors.New("accident log persistence failed")

// Store persists and restores the accident log.
type Store interface {
	Save(log *models.AccidentLog) error
	Load() (*models.AccidentLog, error)
	Location() string
}
