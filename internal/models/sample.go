package models

// TimeLayout is the layout used for sample timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// GPS holds the position reported with a sample.
type GPS struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsZero reports whether the position is the (0, 0) default.
func (g GPS) IsZero() bool {
	return g.Latitude == 0 && g.Longitude == 0
}

// Sample is a single sensor reading.
type Sample struct {
	Time         string  `json:"time"`
	Acceleration float64 `json:"acceleration"` // m/s²
	Impact       float64 `json:"impact"`       // N
	GPS          GPS     `json:"gps"`
}

// Record converts the sample into the raw mapping form delivered by data sources.
func (s Sample) Record() Record {
	return Record{
		"time":         s.Time,
		"acceleration": s.Acceleration,
		"impact":       s.Impact,
		"gps": map[string]any{
			"latitude":  s.GPS.Latitude,
			"longitude": s.GPS.Longitude,
		},
	}
}

// Record is a raw, possibly malformed sensor reading as delivered by a data source.
type Record map[string]any

// Thresholds are the cutoffs above which a reading is considered accident-indicative.
type Thresholds struct {
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	Impact       float64 `json:"impact" yaml:"impact"`
}

// Exceeded reports whether the sample is above either threshold.
func (t Thresholds) Exceeded(s Sample) bool {
	return s.Acceleration > t.Acceleration || s.Impact > t.Impact
}
