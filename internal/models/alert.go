package models

import "time"

// Alert is the notification payload sent when an accident is flagged.
type Alert struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id,omitempty"`
	DetectedAt time.Time `json:"detected_at"`
	Address    string    `json:"address,omitempty"`
	Sample     Sample    `json:"sample"`
}
