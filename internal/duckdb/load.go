package duckdb

import (
	"encoding/json"
	"fmt"

	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

// LoadRecordSet mirrors a record set into the events table, replacing any
// previous contents. The canonical columns get their own columns; extra
// columns are carried as a JSON object. The ts column holds the parsed
// timestamp or NULL when the row's value does not parse, so SQL users can
// filter temporal rows with "ts IS NOT NULL".
func (s *Store) LoadRecordSet(set *model.RecordSet, parser timeseries.Parser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := s.queryCtx()
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning mirror load: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("clearing events table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO events (id, event_id, source_ip, username, raw_ts, ts, extras) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing mirror insert: %w", err)
	}
	defer stmt.Close()

	canonical := map[string]struct{}{
		model.ColEventID:   {},
		model.ColSourceIP:  {},
		model.ColUser:      {},
		model.ColTimestamp: {},
	}

	for i, rec := range set.Rows() {
		rawTS := rec[model.ColTimestamp]

		var ts interface{}
		if parsed, ok := parser.Parse(rawTS); ok {
			ts = parsed
		}

		extras := map[string]string{}
		for _, col := range set.Columns() {
			if _, isCanonical := canonical[col]; isCanonical {
				continue
			}
			if v, ok := rec.Value(col); ok {
				extras[col] = v
			}
		}
		extrasJSON, err := json.Marshal(extras)
		if err != nil {
			return fmt.Errorf("encoding extras for row %d: %w", i, err)
		}

		if _, err := stmt.ExecContext(ctx, i,
			rec[model.ColEventID], rec[model.ColSourceIP], rec[model.ColUser],
			rawTS, ts, string(extrasJSON)); err != nil {
			return fmt.Errorf("inserting row %d: %w", i, err)
		}
	}

	return tx.Commit()
}
