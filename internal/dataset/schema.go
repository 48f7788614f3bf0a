package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColumnMapping renames foreign CSV headers to the canonical column names at
// load time, so exports from other tooling (e.g. "src_ip" or "account") can
// feed the same pipeline. A nil mapping is valid and maps nothing.
type ColumnMapping map[string]string

// columnMappingFile is the YAML shape of a mapping file:
//
//	columns:
//	  src_ip: SourceIP
//	  account: User
type columnMappingFile struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadColumnMapping reads a YAML column-mapping file. An empty path returns
// a nil mapping.
func LoadColumnMapping(path string) (ColumnMapping, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading column mapping: %w", err)
	}

	var file columnMappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing column mapping: %w", err)
	}
	return ColumnMapping(file.Columns), nil
}

// Canonical returns the canonical name for a source header, or the header
// itself when no mapping applies.
func (m ColumnMapping) Canonical(header string) string {
	if m == nil {
		return header
	}
	if canonical, ok := m[header]; ok && canonical != "" {
		return canonical
	}
	return header
}
