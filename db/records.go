package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"absen_map_dashboard/models"

	"github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// TableLoader reads an attendance table that mirrors the csv export. Every
// column is read as text so both sources go through the same record parser.
type TableLoader struct {
	db    *sql.DB
	table string
}

func NewTableLoader(db *sql.DB, table string) (*TableLoader, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &TableLoader{db: db, table: table}, nil
}

func (l *TableLoader) Name() string {
	return "postgres:" + l.table
}

func (l *TableLoader) Load(ctx context.Context) (*models.Table, error) {
	rows, err := l.db.QueryContext(ctx, SelectQuery(l.table))
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", l.table, err)
	}
	defer rows.Close()

	return ScanTable(rows)
}

// SelectQuery quotes each part of a possibly schema-qualified table name.
func SelectQuery(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return "SELECT * FROM " + strings.Join(parts, ".")
}

// Rows is the subset of *sql.Rows that ScanTable needs.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func ScanTable(rows Rows) (*models.Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error reading columns: %w", err)
	}

	table := &models.Table{Columns: columns}
	for rows.Next() {
		values := make([]sql.NullString, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning row %d: %w", len(table.Rows)+1, err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return table, nil
}
