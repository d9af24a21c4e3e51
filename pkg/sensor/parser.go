package sensor

import (
	"encoding/json"
	"strings"

	"github.com/adrianmo/go-nmea"
	"github.com/benmeehan/accident-agent/internal/models"
	"github.com/rs/zerolog"
)

// LineParser turns the sensor board's line protocol into records.
// NMEA sentences update the last known fix; every other line is a JSON reading.
type LineParser struct {
	fix    *models.GPS
	logger zerolog.Logger
}

// NewLineParser creates a parser with no position fix.
func NewLineParser(logger zerolog.Logger) *LineParser {
	return &LineParser{logger: logger}
}

// Fix returns the last valid position fix, if any.
func (p *LineParser) Fix() (models.GPS, bool) {
	if p.fix == nil {
		return models.GPS{}, false
	}
	return *p.fix, true
}

// ParseLine returns the reading carried by line, or false for NMEA, blank and bad lines.
func (p *LineParser) ParseLine(line string) (models.Record, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}

	if strings.HasPrefix(line, "$") {
		p.parseNMEA(line)
		return nil, false
	}

	var record models.Record
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		p.logger.Warn().Err(err).Str("line", line).Msg("Discarding unparseable sensor line")
		return nil, false
	}
	if record == nil {
		p.logger.Warn().Str("line", line).Msg("Discarding sensor line that is not an object")
		return nil, false
	}

	if _, ok := record["gps"]; !ok && p.fix != nil {
		record["gps"] = map[string]any{
			"latitude":  p.fix.Latitude,
			"longitude": p.fix.Longitude,
		}
	}
	return record, true
}

func (p *LineParser) parseNMEA(line string) {
	sentence, err := nmea.Parse(line)
	if err != nil {
		p.logger.Warn().Err(err).Str("line", line).Msg("Discarding invalid NMEA sentence")
		return
	}

	switch s := sentence.(type) {
	case nmea.GGA:
		if s.FixQuality != nmea.Invalid {
			p.fix = &models.GPS{Latitude: s.Latitude, Longitude: s.Longitude}
		}
	case nmea.RMC:
		if s.Validity == nmea.ValidRMC {
			p.fix = &models.GPS{Latitude: s.Latitude, Longitude: s.Longitude}
		}
	}
}
