package report

import (
	"github.com/tinytelemetry/sshmon/internal/analytics"
	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/filter"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

// Ranking sizes used by the two presentation call sites: the top-IP bar
// listing and the top-IP share breakdown.
const (
	TopIPsLimit     = 20
	TopIPShareLimit = 10
)

// Snapshot is the complete output of one filter-and-aggregate evaluation,
// consumed as-is by the presentation layer. It is recomputed from scratch on
// every selection change; nothing is cached across interactions.
type Snapshot struct {
	RowCount   int               `json:"row_count"`
	Metrics    model.MetricSet   `json:"metrics"`
	TopIPs     []model.RankEntry `json:"top_ips"`
	TopIPShare []model.RankEntry `json:"top_ip_share"`
	Hourly     timeseries.Series `json:"hourly"`

	// NoResults is the "empty filtered view" terminal state. When set, the
	// dependent aggregates above are all zero/empty by construction.
	NoResults bool `json:"no_results"`

	// NoTemporalData is set when no row of the view survived timestamp
	// parsing (or the Timestamp column is absent).
	NoTemporalData bool `json:"no_temporal_data"`
}

// Build runs one full synchronous evaluation: filter the record set, then
// compute metrics, rankings, and the hourly series over the filtered view.
// On an empty view the aggregate stages are skipped and zero/empty results
// are reported instead of being computed on no data.
func Build(ds *dataset.Dataset, sel filter.Selection, parser timeseries.Parser) Snapshot {
	if ds == nil || ds.Mode != dataset.ModeStructured {
		return Snapshot{NoResults: true, NoTemporalData: true}
	}

	view := filter.Apply(ds.Set, sel)
	if view.Len() == 0 {
		return Snapshot{NoResults: true, NoTemporalData: true}
	}

	hourly := timeseries.HourlyCounts(view, parser)

	return Snapshot{
		RowCount:       view.Len(),
		Metrics:        analytics.Metrics(view),
		TopIPs:         analytics.TopValues(view, model.ColSourceIP, TopIPsLimit),
		TopIPShare:     analytics.TopValues(view, model.ColSourceIP, TopIPShareLimit),
		Hourly:         hourly,
		NoTemporalData: hourly.Empty(),
	}
}

// View applies the selection and returns the filtered view itself, for raw
// table display.
func View(ds *dataset.Dataset, sel filter.Selection) *model.RecordSet {
	if ds == nil || ds.Mode != dataset.ModeStructured {
		return nil
	}
	return filter.Apply(ds.Set, sel)
}
