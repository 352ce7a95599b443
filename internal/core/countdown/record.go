package countdown

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StorageKey is the key the persisted record lives under.
const StorageKey = "countdown_state"

// ErrMalformedRecord indicates stored bytes that do not describe a record.
var ErrMalformedRecord = errors.New("malformed countdown record")

// Record is the persisted start of the current mode segment.
type Record struct {
	// StartTimestamp is the wall-clock start in epoch milliseconds.
	StartTimestamp int64 `json:"startTimestamp"`
	// Duration is the segment length in seconds.
	Duration int `json:"duration"`
}

// NewRecord returns a record for a segment of duration seconds starting at start.
func NewRecord(start time.Time, duration int) Record {
	return Record{
		StartTimestamp: start.UnixMilli(),
		Duration:       duration,
	}
}

// Start returns the segment start as a time.
func (record Record) Start() time.Time {
	return time.UnixMilli(record.StartTimestamp)
}

// Elapsed returns the whole seconds between the segment start and now.
// A start in the future counts as no time elapsed.
func (record Record) Elapsed(now time.Time) int {
	millis := now.UnixMilli() - record.StartTimestamp
	if millis <= 0 {
		return 0
	}
	return int(millis / 1000)
}

// RemainingAt returns the seconds left in the segment at now, never negative.
func (record Record) RemainingAt(now time.Time) int {
	remaining := record.Duration - record.Elapsed(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Encode serializes the record as JSON.
func (record Record) Encode() ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode countdown record: %w", err)
	}
	return data, nil
}

type wireRecord struct {
	StartTimestamp *int64 `json:"startTimestamp"`
	Duration       *int   `json:"duration"`
}

// DecodeRecord parses a stored record. Any unexpected shape returns
// ErrMalformedRecord.
func DecodeRecord(data []byte) (Record, error) {
	var wire wireRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if wire.StartTimestamp == nil || wire.Duration == nil {
		return Record{}, fmt.Errorf("%w: missing field", ErrMalformedRecord)
	}
	if *wire.Duration <= 0 || *wire.StartTimestamp < 0 {
		return Record{}, fmt.Errorf("%w: out of range", ErrMalformedRecord)
	}
	return Record{
		StartTimestamp: *wire.StartTimestamp,
		Duration:       *wire.Duration,
	}, nil
}
