package detector

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/benmeehan/accident-agent/internal/models"
)

// Reasons a record can be rejected.
const (
	ReasonMissing = "missing"
	ReasonInvalid = "invalid"
)

// MalformedRecordError reports a record that could not be turned into a sample.
// Index is the record's position in the scanned batch, or -1 outside a scan.
type MalformedRecordError struct {
	Index  int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s field %q", e.Reason, e.Field)
	}
	return fmt.Sprintf("record %d: %s field %q", e.Index, e.Reason, e.Field)
}

func malformed(field, reason string) *MalformedRecordError {
	return &MalformedRecordError{Index: -1, Field: field, Reason: reason}
}

// Extract pulls the typed sample fields out of a raw record.
// A missing gps field defaults to (0, 0); a present but malformed one is an error.
// Any time value that can be rendered as text is accepted.
func Extract(record models.Record) (models.Sample, error) {
	var sample models.Sample

	rawTime, ok := record["time"]
	if !ok || rawTime == nil {
		return sample, malformed("time", ReasonMissing)
	}
	ts, ok := toTime(rawTime)
	if !ok {
		return sample, malformed("time", ReasonInvalid)
	}
	sample.Time = ts

	acceleration, err := numberField(record, "acceleration")
	if err != nil {
		return sample, err
	}
	sample.Acceleration = acceleration

	impact, err := numberField(record, "impact")
	if err != nil {
		return sample, err
	}
	sample.Impact = impact

	rawGPS, ok := record["gps"]
	if !ok || rawGPS == nil {
		return sample, nil
	}
	gps, err := toGPS(rawGPS)
	if err != nil {
		return sample, err
	}
	sample.GPS = gps

	return sample, nil
}

func numberField(record map[string]any, field string) (float64, error) {
	raw, ok := record[field]
	if !ok || raw == nil {
		return 0, malformed(field, ReasonMissing)
	}
	v, ok := toFloat(raw)
	if !ok {
		return 0, malformed(field, ReasonInvalid)
	}
	return v, nil
}

func toGPS(raw any) (models.GPS, error) {
	var fields map[string]any
	switch v := raw.(type) {
	case map[string]any:
		fields = v
	case models.Record:
		fields = v
	case models.GPS:
		return v, nil
	default:
		return models.GPS{}, malformed("gps", ReasonInvalid)
	}

	lat, err := numberField(fields, "latitude")
	if err != nil {
		return models.GPS{}, malformed("gps.latitude", err.(*MalformedRecordError).Reason)
	}
	lng, err := numberField(fields, "longitude")
	if err != nil {
		return models.GPS{}, malformed("gps.longitude", err.(*MalformedRecordError).Reason)
	}
	return models.GPS{Latitude: lat, Longitude: lng}, nil
}

// toTime renders any timestamp representation as text. Strings are kept verbatim,
// numbers (epoch seconds or similar) are printed without exponent and structured
// values are rendered as compact JSON.
func toTime(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(models.TimeLayout), true
	}

	if f, ok := toFloat(raw); ok {
		return strconv.FormatFloat(f, 'f', -1, 64), true
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
