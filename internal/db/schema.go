package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"climate-api/internal/config"
)

// ErrSchemaMismatch is returned by VerifySchema when a required table or
// column is missing from the database.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Table lists the columns this service reads from one table.
type Table struct {
	Name    string
	Columns []string
}

// RequiredSchema is the subset of the climate database the API depends on.
var RequiredSchema = []Table{
	{Name: "measurement", Columns: []string{"station", "date", "prcp", "tobs"}},
	{Name: "station", Columns: []string{"station"}},
}

const sqliteColumnsSQL = `SELECT name FROM pragma_table_info(?)`

const postgresColumnsSQL = `
SELECT column_name
FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1`

// VerifySchema checks every table in tables for its required columns and
// reports all problems at once.
func VerifySchema(ctx context.Context, db *sql.DB, driverName string, tables []Table) error {
	query := sqliteColumnsSQL
	if driverName == config.DriverPostgres {
		query = postgresColumnsSQL
	}

	var problems []string
	for _, t := range tables {
		have, err := tableColumns(ctx, db, query, t.Name)
		if err != nil {
			return fmt.Errorf("inspect table %s: %w", t.Name, err)
		}
		if len(have) == 0 {
			problems = append(problems, fmt.Sprintf("table %q is missing", t.Name))
			continue
		}
		for _, c := range t.Columns {
			if !have[strings.ToLower(c)] {
				problems = append(problems, fmt.Sprintf("column %s.%s is missing", t.Name, c))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(problems, "; "))
	}
	slog.Debug("schema verified", "tables", len(tables))
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, query, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close table info rows", "table", table, "error", err)
		}
	}()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[strings.ToLower(name)] = true
	}
	return out, rows.Err()
}
