package analytics

import (
	"sort"

	"github.com/tinytelemetry/sshmon/internal/model"
)

// TopValues groups a view by the stringified values of a column, counts rows
// per group, and returns at most n groups sorted by count descending. Groups
// with equal counts keep their first-seen-in-input order, so rankings are
// deterministic for a given view. Missing values are not a group. An absent
// column or an empty view yields an empty ranking, never an error.
func TopValues(view *model.RecordSet, column string, n int) []model.RankEntry {
	if view == nil || n <= 0 || !view.HasColumn(column) {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, rec := range view.Rows() {
		v, ok := rec.Value(column)
		if !ok {
			continue
		}
		if _, seen := counts[v]; !seen {
			firstSeen[v] = order
			order++
		}
		counts[v]++
	}

	entries := make([]model.RankEntry, 0, len(counts))
	for v, c := range counts {
		entries = append(entries, model.RankEntry{Value: v, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Value] < firstSeen[entries[j].Value]
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
