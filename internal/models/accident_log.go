package models

import "encoding/json"

// AccidentLog is the ordered, append-only sequence of flagged samples.
type AccidentLog struct {
	samples []Sample
}

// NewAccidentLog creates a log holding the given samples in order.
func NewAccidentLog(samples ...Sample) *AccidentLog {
	log := &AccidentLog{}
	log.samples = append(log.samples, samples...)
	return log
}

// Append adds a flagged sample to the end of the log.
func (l *AccidentLog) Append(s Sample) {
	l.samples = append(l.samples, s)
}

// Len returns the number of flagged samples.
func (l *AccidentLog) Len() int {
	return len(l.samples)
}

// Samples returns a copy of the logged samples.
func (l *AccidentLog) Samples() []Sample {
	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}

// First returns the earliest logged sample.
func (l *AccidentLog) First() (Sample, bool) {
	if len(l.samples) == 0 {
		return Sample{}, false
	}
	return l.samples[0], true
}

// Replace swaps the log contents for the contents of other.
func (l *AccidentLog) Replace(other *AccidentLog) {
	l.samples = other.Samples()
}

// MarshalJSON encodes the log as a JSON array of samples.
func (l *AccidentLog) MarshalJSON() ([]byte, error) {
	if l.samples == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.samples)
}

// UnmarshalJSON decodes a JSON array of samples into the log.
func (l *AccidentLog) UnmarshalJSON(data []byte) error {
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return err
	}
	l.samples = samples
	return nil
}
