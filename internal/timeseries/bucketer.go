package timeseries

import (
	"strings"
	"time"

	"github.com/tinytelemetry/sshmon/internal/model"
)

// DefaultReferenceYear is assigned to parsed timestamps because the external
// format carries no year component. 1900 matches the strptime convention for
// yearless formats. Datasets spanning a year boundary will bucket
// incorrectly under any single reference year; that is a documented
// limitation of the source format, not something this package papers over.
const DefaultReferenceYear = 1900

// candidateLayouts are the accepted renderings of the fixed external format
// "abbreviated-month day hour:minute:second". Syslog pads single-digit days
// with a space; other exporters zero-pad or use no padding at all.
var candidateLayouts = []string{
	"Jan _2 15:04:05",
	"Jan 02 15:04:05",
	"Jan 2 15:04:05",
}

// Parser parses event timestamps under the fixed yearless format.
type Parser struct {
	ReferenceYear int
}

// NewParser creates a Parser. A non-positive year selects
// DefaultReferenceYear.
func NewParser(referenceYear int) Parser {
	if referenceYear <= 0 {
		referenceYear = DefaultReferenceYear
	}
	return Parser{ReferenceYear: referenceYear}
}

// Parse attempts to parse one timestamp value. The boolean result is the
// explicit per-row outcome: false means the row is excluded from temporal
// analysis. Parsed times are UTC with the reference year applied.
func (p Parser) Parse(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}

	for _, layout := range candidateLayouts {
		ts, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		year := p.ReferenceYear
		if year <= 0 {
			year = DefaultReferenceYear
		}
		return time.Date(year, ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), 0, time.UTC), true
	}
	return time.Time{}, false
}

// Series is the outcome of bucketing a view: the ordered hourly buckets plus
// the explicit parse accounting. Dropped counts rows whose timestamp value
// failed to parse (including rows with a missing value); when the timestamp
// column is absent nothing is attempted and both counters stay zero.
type Series struct {
	Buckets []model.TimeBucket `json:"buckets"`
	Parsed  int                `json:"parsed"`
	Dropped int                `json:"dropped"`
}

// Empty reports the "no temporal data" terminal state: no row survived
// parsing (or the column was absent).
func (s Series) Empty() bool { return len(s.Buckets) == 0 }

// HourlyCounts buckets a view's parseable timestamps into left-closed
// calendar-hour windows and returns them in chronological order. The series
// is dense: hours between the first and last observed bucket that contain no
// events are emitted with a zero count so chart axes stay continuous.
func HourlyCounts(view *model.RecordSet, p Parser) Series {
	if view == nil || !view.HasColumn(model.ColTimestamp) {
		return Series{}
	}

	counts := make(map[time.Time]int)
	var first, last time.Time
	parsed, dropped := 0, 0

	for _, rec := range view.Rows() {
		ts, ok := p.Parse(rec[model.ColTimestamp])
		if !ok {
			dropped++
			continue
		}
		parsed++

		bucket := ts.Truncate(time.Hour)
		counts[bucket]++
		if first.IsZero() || bucket.Before(first) {
			first = bucket
		}
		if last.IsZero() || bucket.After(last) {
			last = bucket
		}
	}

	if parsed == 0 {
		return Series{Dropped: dropped}
	}

	buckets := make([]model.TimeBucket, 0, len(counts))
	for t := first; !t.After(last); t = t.Add(time.Hour) {
		buckets = append(buckets, model.TimeBucket{Start: t, Count: counts[t]})
	}

	return Series{Buckets: buckets, Parsed: parsed, Dropped: dropped}
}
