package analytics

import "github.com/tinytelemetry/sshmon/internal/model"

// Metrics computes the summary counters over a view: total row count plus
// distinct non-missing SourceIP and User cardinalities. A missing column
// degrades its counter to zero; an empty view yields all zeros. Pure
// function, no side effects.
func Metrics(view *model.RecordSet) model.MetricSet {
	return model.MetricSet{
		TotalEvents:   view.Len(),
		UniqueIPs:     distinctCount(view, model.ColSourceIP),
		TargetedUsers: distinctCount(view, model.ColUser),
	}
}

func distinctCount(view *model.RecordSet, column string) int {
	if view == nil || !view.HasColumn(column) {
		return 0
	}
	seen := make(map[string]struct{})
	for _, rec := range view.Rows() {
		if v, ok := rec.Value(column); ok {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
