package model

import "time"

// Canonical column names for SSH auth event data. All of them are optional;
// absence degrades the dependent feature rather than failing the pipeline.
const (
	ColEventID   = "EventId"
	ColSourceIP  = "SourceIP"
	ColUser      = "User"
	ColTimestamp = "Timestamp"
)

// Record is one event row: a mapping from column name to raw string value.
// A missing key and an empty value are both treated as "missing" by the
// analytics layer.
type Record map[string]string

// Value returns the stringified value for a column, and whether it is
// present and non-empty.
func (r Record) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// MetricSet holds the three summary counters computed over a view.
type MetricSet struct {
	TotalEvents   int `json:"total_events"`
	UniqueIPs     int `json:"unique_ips"`
	TargetedUsers int `json:"targeted_users"`
}

// RankEntry is one (category value, count) pair of a top-N ranking.
type RankEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// TimeBucket is one hourly bucket of a time series. Start is the left-closed
// calendar-hour boundary.
type TimeBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}
