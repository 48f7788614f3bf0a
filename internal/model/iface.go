package model

// SchemaQuerier provides schema introspection and arbitrary read-only queries
// against the analytical mirror. Implemented by the duckdb store; consumed by
// the HTTP API.
type SchemaQuerier interface {
	ExecuteQuery(query string) ([]map[string]interface{}, error)
	GetSchemaDescription() string
	TableRowCounts() (map[string]int64, error)
}
