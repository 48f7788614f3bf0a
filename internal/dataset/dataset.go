package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tinytelemetry/sshmon/internal/model"
)

// Mode describes how a source was routed at load time.
type Mode string

const (
	// ModeStructured means the source carried a header row and the full
	// analytic pipeline is available.
	ModeStructured Mode = "structured"

	// ModeUnstructured means the source is plain text; only the verbatim
	// line listing is exposed.
	ModeUnstructured Mode = "unstructured"
)

// Dataset is the loaded record set (or raw line listing) plus its routing
// mode. It is read-only after Load; every downstream transformation derives
// new views instead of editing it.
type Dataset struct {
	Mode   Mode
	Set    *model.RecordSet // nil in unstructured mode
	Lines  []string         // nil in structured mode
	Source string           // originating file path, informational
}

// Load reads a source file and routes it by extension: .csv is structured,
// anything else (.log, .txt, ...) is an unstructured line listing.
func Load(path string, mapping ColumnMapping) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		set, err := ReadCSV(f, mapping)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return &Dataset{Mode: ModeStructured, Set: set, Source: path}, nil
	}

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Dataset{Mode: ModeUnstructured, Lines: lines, Source: path}, nil
}

// ReadCSV parses a header-first CSV stream into a RecordSet. Rows with fewer
// fields than the header are tolerated; the missing cells are simply absent
// from the record. An optional column mapping renames foreign headers to the
// canonical column names.
func ReadCSV(r io.Reader, mapping ColumnMapping) (*model.RecordSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = mapping.Canonical(strings.TrimSpace(name))
	}

	var rows []model.Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}

		rec := make(model.Record, len(columns))
		for i, value := range fields {
			if i >= len(columns) {
				break
			}
			rec[columns[i]] = value
		}
		rows = append(rows, rec)
	}

	return model.NewRecordSet(columns, rows), nil
}

// ReadLines reads an unstructured source verbatim, one entry per line.
// Trailing blank lines are dropped; interior blanks are kept so the listing
// stays faithful to the input.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning lines: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}

// DistinctValues returns the sorted distinct non-missing values of a column.
// Used by the presentation layer to populate filter choices. An absent
// column yields an empty slice.
func DistinctValues(set *model.RecordSet, column string) []string {
	if set == nil || !set.HasColumn(column) {
		return nil
	}

	seen := make(map[string]struct{})
	for _, rec := range set.Rows() {
		if v, ok := rec.Value(column); ok {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
