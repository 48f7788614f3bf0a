package filter

import "github.com/tinytelemetry/sshmon/internal/model"

// ValueSet is a set-membership constraint over a single column. An inactive
// set passes every row. An active set with no values matches nothing; this is
// deliberately distinguished from "no constraint" so that an explicitly
// declared empty selection cannot silently match the whole record set.
type ValueSet struct {
	Active bool
	Values map[string]struct{}
}

// NewValueSet builds the selection a multiselect widget produces: choosing no
// values means "no constraint", so the set is only active when values exist.
func NewValueSet(values ...string) ValueSet {
	if len(values) == 0 {
		return ValueSet{}
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return ValueSet{Active: true, Values: set}
}

// Match reports whether a value satisfies the constraint.
func (s ValueSet) Match(v string) bool {
	if !s.Active {
		return true
	}
	_, ok := s.Values[v]
	return ok
}

// Selection is the operator's per-dimension filter choice. The zero value
// means no constraints.
type Selection struct {
	// EventID is an exact-match constraint; the empty string is the
	// "no constraint" sentinel.
	EventID string

	// SourceIPs is a set-membership constraint over SourceIP.
	SourceIPs ValueSet
}

// Active reports whether any dimension constrains the view.
func (sel Selection) Active() bool {
	return sel.EventID != "" || sel.SourceIPs.Active
}

// Apply narrows a record set to the rows matching every active constraint
// (logical AND across dimensions) and returns a new order-preserving view.
// The input set is never mutated. A filter whose column is absent from the
// set is treated as always-pass, never always-fail. An empty result is a
// valid state, not an error.
func Apply(set *model.RecordSet, sel Selection) *model.RecordSet {
	if set == nil {
		return nil
	}
	if !sel.Active() {
		return set
	}

	matchEventID := sel.EventID != "" && set.HasColumn(model.ColEventID)
	matchSourceIP := sel.SourceIPs.Active && set.HasColumn(model.ColSourceIP)

	kept := make([]model.Record, 0, set.Len())
	for _, rec := range set.Rows() {
		if matchEventID && rec[model.ColEventID] != sel.EventID {
			continue
		}
		if matchSourceIP && !sel.SourceIPs.Match(rec[model.ColSourceIP]) {
			continue
		}
		kept = append(kept, rec)
	}

	return set.DeriveView(kept)
}
