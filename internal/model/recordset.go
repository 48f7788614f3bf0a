package model

// RecordSet is an ordered, immutable collection of event records sharing a
// common column set. Derived views share the backing rows with their parent;
// nothing in this package mutates a row after construction.
type RecordSet struct {
	columns []string
	colSet  map[string]struct{}
	rows    []Record
}

// NewRecordSet builds a RecordSet from a header and rows. The header order is
// preserved for display.
func NewRecordSet(columns []string, rows []Record) *RecordSet {
	colSet := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		colSet[c] = struct{}{}
	}
	return &RecordSet{
		columns: columns,
		colSet:  colSet,
		rows:    rows,
	}
}

// Len returns the number of rows.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Row returns the i-th record.
func (s *RecordSet) Row(i int) Record { return s.rows[i] }

// Rows returns the backing row slice. Callers must treat it as read-only.
func (s *RecordSet) Rows() []Record {
	if s == nil {
		return nil
	}
	return s.rows
}

// Columns returns the header columns in input order.
func (s *RecordSet) Columns() []string {
	if s == nil {
		return nil
	}
	return s.columns
}

// HasColumn reports whether the set declares the given column. This is the
// capability query every column-dependent operation branches on.
func (s *RecordSet) HasColumn(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.colSet[name]
	return ok
}

// DeriveView creates a new RecordSet over a subset of this set's rows,
// keeping the same schema. Rows are shared, not copied.
func (s *RecordSet) DeriveView(rows []Record) *RecordSet {
	return &RecordSet{
		columns: s.columns,
		colSet:  s.colSet,
		rows:    rows,
	}
}
