package store

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportJSONL dumps every entity table to <table>.jsonl under dir, one JSON
// object per row, column names as keys. Files are written with the
// temp-file, fsync, rename pattern so a crash mid-export never leaves a
// torn file.
func (r *MaintenanceRepo) ExportJSONL(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	for _, table := range entityTables {
		records, err := r.dumpTable(table)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, table+".jsonl")
		if err := writeJSONL(path, records); err != nil {
			return fmt.Errorf("exporting %s: %w", table, err)
		}
	}
	r.logger.Info("exported store", "dir", dir, "tables", len(entityTables))
	return nil
}

// dumpTable reads all rows of one table into JSON records keyed by column
// name.
func (r *MaintenanceRepo) dumpTable(table string) ([]json.RawMessage, error) {
	var records []json.RawMessage
	err := r.db.Query("SELECT * FROM "+table, func(rows *sql.Rows) error {
		cols, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("getting columns: %w", err)
		}
		for rows.Next() {
			values := make([]any, len(cols))
			valuePtrs := make([]any, len(cols))
			for i := range values {
				valuePtrs[i] = &values[i]
			}
			if err := rows.Scan(valuePtrs...); err != nil {
				return fmt.Errorf("scanning row: %w", err)
			}
			rec := make(map[string]any, len(cols))
			for i, col := range cols {
				if b, ok := values[i].([]byte); ok {
					rec[col] = string(b)
				} else {
					rec[col] = values[i]
				}
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshaling row: %w", err)
			}
			records = append(records, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dumping %s: %w", table, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
