package identity

import (
	"os"

	"github.com/benmeehan/accident-agent/pkg/file"
)

// Vehicle identifies the vehicle the agent is installed in.
type Vehicle struct {
	ID    string `json:"vehicle_id,omitempty"`
	Plate string `json:"plate,omitempty"`
	Owner string `json:"owner,omitempty"`
}

// VehicleInfoInterface exposes the vehicle identity to the alerting pipeline.
type VehicleInfoInterface interface {
	LoadVehicleInfo() error
	GetVehicleID() string
	GetVehicle() Vehicle
}

// VehicleInfo loads the vehicle identity from a JSON file.
type VehicleInfo struct {
	VehicleInfoFile string
	Vehicle         Vehicle
	fileOps         file.FileOperations
}

// NewVehicleInfo initializes a new VehicleInfo instance.
func NewVehicleInfo(filePath string, fileOps file.FileOperations) *VehicleInfo {
	return &VehicleInfo{
		VehicleInfoFile: filePath,
		fileOps:         fileOps,
	}
}

// LoadVehicleInfo reads the identity file. A missing file leaves the identity empty.
func (v *VehicleInfo) LoadVehicleInfo() error {
	if v.VehicleInfoFile == "" {
		return nil
	}

	err := v.fileOps.ReadJsonFile(v.VehicleInfoFile, &v.Vehicle)
	if err != nil {
		if os.IsNotExist(err) {
			v.Vehicle = Vehicle{}
			return nil
		}
		return err
	}

	return nil
}

// GetVehicleID returns the vehicle ID.
func (v *VehicleInfo) GetVehicleID() string {
	return v.Vehicle.ID
}

// GetVehicle returns the full vehicle identity.
func (v *VehicleInfo) GetVehicle() Vehicle {
	return v.Vehicle
}
