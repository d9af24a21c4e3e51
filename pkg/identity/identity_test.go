package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/accident-agent/pkg/file"
	"github.com/benmeehan/accident-agent/pkg/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleInfo_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"vehicle_id":"car-42","plate":"KA-01-1234","owner":"Fleet Ops"}`), 0600))

	info := identity.NewVehicleInfo(path, file.NewFileService())
	require.NoError(t, info.LoadVehicleInfo())

	assert.Equal(t, "car-42", info.GetVehicleID())
	assert.Equal(t, identity.Vehicle{ID: "car-42", Plate: "KA-01-1234", Owner: "Fleet Ops"}, info.GetVehicle())
}

func TestVehicleInfo_MissingFile(t *testing.T) {
	info := identity.NewVehicleInfo(filepath.Join(t.TempDir(), "nope.json"), file.NewFileService())

	assert.NoError(t, info.LoadVehicleInfo())
	assert.Empty(t, info.GetVehicleID())
}

func TestVehicleInfo_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vehicle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0600))

	info := identity.NewVehicleInfo(path, file.NewFileService())
	assert.Error(t, info.LoadVehicleInfo())
}
