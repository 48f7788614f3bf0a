package report

import (
	"testing"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/filter"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

func newTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	columns := []string{model.ColEventID, model.ColSourceIP, model.ColUser, model.ColTimestamp}
	rows := []model.Record{
		{model.ColEventID: "E1", model.ColSourceIP: "1.2.3.4", model.ColUser: "root", model.ColTimestamp: "Jun 14 00:10:00"},
		{model.ColEventID: "E1", model.ColSourceIP: "1.2.3.4", model.ColUser: "admin", model.ColTimestamp: "Jun 14 00:20:00"},
		{model.ColEventID: "E2", model.ColSourceIP: "5.6.7.8", model.ColUser: "root", model.ColTimestamp: "Jun 14 01:30:00"},
		{model.ColEventID: "E1", model.ColSourceIP: "9.9.9.9", model.ColUser: "guest", model.ColTimestamp: "bad-value"},
	}
	return &dataset.Dataset{
		Mode:   dataset.ModeStructured,
		Set:    model.NewRecordSet(columns, rows),
		Source: "test.csv",
	}
}

func TestBuild(t *testing.T) {
	ds := newTestDataset(t)

	snap := Build(ds, filter.Selection{}, timeseries.NewParser(0))

	if snap.NoResults {
		t.Fatal("unexpected NoResults")
	}
	if snap.RowCount != 4 {
		t.Errorf("RowCount = %d, want 4", snap.RowCount)
	}
	if snap.Metrics.UniqueIPs != 3 {
		t.Errorf("UniqueIPs = %d, want 3", snap.Metrics.UniqueIPs)
	}
	if snap.Metrics.TargetedUsers != 3 {
		t.Errorf("TargetedUsers = %d, want 3", snap.Metrics.TargetedUsers)
	}
	if len(snap.TopIPs) != 3 {
		t.Fatalf("TopIPs len = %d, want 3", len(snap.TopIPs))
	}
	if snap.TopIPs[0].Value != "1.2.3.4" || snap.TopIPs[0].Count != 2 {
		t.Errorf("TopIPs[0] = %+v, want {1.2.3.4 2}", snap.TopIPs[0])
	}
	if snap.NoTemporalData {
		t.Error("unexpected NoTemporalData")
	}
	if snap.Hourly.Dropped != 1 {
		t.Errorf("Hourly.Dropped = %d, want 1", snap.Hourly.Dropped)
	}
}

func TestBuild_EmptyViewShortCircuits(t *testing.T) {
	ds := newTestDataset(t)

	snap := Build(ds, filter.Selection{EventID: "E99"}, timeseries.NewParser(0))

	if !snap.NoResults {
		t.Fatal("want NoResults")
	}
	if !snap.NoTemporalData {
		t.Error("want NoTemporalData alongside NoResults")
	}
	if snap.RowCount != 0 {
		t.Errorf("RowCount = %d, want 0", snap.RowCount)
	}
	if snap.Metrics != (model.MetricSet{}) {
		t.Errorf("Metrics = %+v, want zeros", snap.Metrics)
	}
	if len(snap.TopIPs) != 0 || len(snap.TopIPShare) != 0 {
		t.Error("rankings should be empty on an empty view")
	}
	if !snap.Hourly.Empty() {
		t.Error("hourly series should be empty on an empty view")
	}
}

func TestBuild_FilteredSnapshot(t *testing.T) {
	ds := newTestDataset(t)
	sel := filter.Selection{SourceIPs: filter.NewValueSet("1.2.3.4")}

	snap := Build(ds, sel, timeseries.NewParser(0))

	if snap.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", snap.RowCount)
	}
	if snap.Metrics.UniqueIPs != 1 {
		t.Errorf("UniqueIPs = %d, want 1", snap.Metrics.UniqueIPs)
	}
	if len(snap.Hourly.Buckets) != 1 {
		t.Errorf("buckets = %d, want 1 (both rows in hour 00)", len(snap.Hourly.Buckets))
	}
}

func TestBuild_NoTemporalDataFlag(t *testing.T) {
	columns := []string{model.ColEventID, model.ColSourceIP}
	ds := &dataset.Dataset{
		Mode: dataset.ModeStructured,
		Set: model.NewRecordSet(columns, []model.Record{
			{model.ColEventID: "E1", model.ColSourceIP: "1.2.3.4"},
		}),
	}

	snap := Build(ds, filter.Selection{}, timeseries.NewParser(0))
	if snap.NoResults {
		t.Error("rows exist, NoResults should be false")
	}
	if !snap.NoTemporalData {
		t.Error("want NoTemporalData without a timestamp column")
	}
}

func TestBuild_UnstructuredDataset(t *testing.T) {
	ds := &dataset.Dataset{Mode: dataset.ModeUnstructured, Lines: []string{"raw"}}

	snap := Build(ds, filter.Selection{}, timeseries.NewParser(0))
	if !snap.NoResults || !snap.NoTemporalData {
		t.Error("unstructured datasets have no analytic snapshot")
	}
}

func TestView(t *testing.T) {
	ds := newTestDataset(t)

	view := View(ds, filter.Selection{EventID: "E1"})
	if view.Len() != 3 {
		t.Errorf("Len = %d, want 3", view.Len())
	}

	if got := View(&dataset.Dataset{Mode: dataset.ModeUnstructured}, filter.Selection{}); got != nil {
		t.Error("unstructured dataset should yield a nil view")
	}
}
