package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Health is a source's connectivity status as last observed by a poll.
type Health int

const (
	HealthConnected Health = iota
	HealthLost
)

func (h Health) String() string {
	if h == HealthConnected {
		return "connected"
	}
	return "lost"
}

// MarshalJSON renders Health as its string form, so a persisted
// TopologyStore reads "connected"/"lost" rather than a bare enum index.
func (h Health) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", h.String())), nil
}

// UnmarshalJSON parses Health back from its string form.
func (h *Health) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "connected":
		*h = HealthConnected
	case "lost":
		*h = HealthLost
	default:
		return fmt.Errorf("model: unknown health value %q", s)
	}
	return nil
}

// SourceState is everything the store tracks for one source: its
// current partition plus freshness bookkeeping. Timestamps are
// wall-clock, set by the store on replace_partition/mark_lost, never by
// callers directly.
type SourceState struct {
	Partition        Partition
	Health           Health
	LastSnapshot     time.Time
	LastConnected    time.Time
	LastStatusChange time.Time
}
