package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/accident-agent/internal/mocks"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/benmeehan/accident-agent/pkg/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleLog() *models.AccidentLog {
	return models.NewAccidentLog(
		models.Sample{Time: "2024-12-01 12:00:00", Acceleration: 15, Impact: 90,
			GPS: models.GPS{Latitude: 40.7128, Longitude: -74.0060}},
		models.Sample{Time: "2024-12-01 12:00:07", Acceleration: 0.1234567890123, Impact: 51.000001},
	)
}

func TestJSONStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accident_log.json")
	store := storage.NewJSONStore(path, file.NewFileService())

	original := sampleLog()
	require.NoError(t, store.Save(original))

	loaded, err := storage.NewJSONStore(path, file.NewFileService()).Load()
	require.NoError(t, err)

	if diff := cmp.Diff(original.Samples(), loaded.Samples()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, path, store.Location())
}

func TestJSONStore_FileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accident_log.json")
	store := storage.NewJSONStore(path, file.NewFileService())

	log := models.NewAccidentLog(models.Sample{Time: "2024-12-01 12:00:00", Acceleration: 15, Impact: 90})
	require.NoError(t, store.Save(log))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"time":"2024-12-01 12:00:00","acceleration":15,"impact":90,
		"gps":{"latitude":0,"longitude":0}}]`, string(data))
}

func TestJSONStore_EmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accident_log.json")
	store := storage.NewJSONStore(path, file.NewFileService())

	require.NoError(t, store.Save(models.NewAccidentLog()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestJSONStore_LoadMissingFileIsEmpty(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "missing.json"), file.NewFileService())

	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestJSONStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	store := storage.NewJSONStore(path, file.NewFileService())

	_, err := store.Load()

	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrPersistence))
}

func TestJSONStore_SaveFailure(t *testing.T) {
	mockFileClient := new(mocks.FileOperations)
	mockFileClient.On("WriteJsonFile", "log.json", mock.Anything).Return(errors.New("disk full"))

	err := storage.NewJSONStore("log.json", mockFileClient).Save(sampleLog())

	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrPersistence)
	assert.Contains(t, err.Error(), "disk full")
	mockFileClient.AssertExpectations(t)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accidents.db")
	store, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	original := sampleLog()
	require.NoError(t, store.Save(original))

	loaded, err := store.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(original.Samples(), loaded.Samples()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStore_SaveReplacesPreviousContents(t *testing.T) {
	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "accidents.db"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(sampleLog()))

	shorter := models.NewAccidentLog(models.Sample{Time: "later", Acceleration: 30, Impact: 10})
	require.NoError(t, store.Save(shorter))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, shorter.Samples(), loaded.Samples())
}

func TestSQLiteStore_PersistsAcrossHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accidents.db")

	first, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Save(sampleLog()))
	require.NoError(t, first.Close())

	second, err := storage.NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	loaded, err := second.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Len())
	assert.Equal(t, path, second.Location())
}
