package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"table-compare/core/database"
	"table-compare/core/tablediff"

	"gorm.io/gorm"
)

// TableDataset is a database table read through GORM.
type TableDataset struct {
	db     *gorm.DB
	table  string
	fields []tablediff.Field
}

// OpenTable reads the column list of table. A table without columns, which is
// also what a missing SQLite table looks like, fails with tablediff.ErrNoFields.
func OpenTable(ctx context.Context, db *gorm.DB, table string) (*TableDataset, error) {
	columns, err := database.GetTableColumns(db.WithContext(ctx), table)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s: %w", table, tablediff.ErrNoFields)
	}

	fields := make([]tablediff.Field, 0, len(columns))
	for _, col := range columns {
		fields = append(fields, tablediff.Field{Name: col.Field, Type: col.Type})
	}
	return &TableDataset{db: db, table: table, fields: fields}, nil
}

// Name returns the table name.
func (d *TableDataset) Name() string { return d.table }

// Fields returns the table columns in table order.
func (d *TableDataset) Fields() []tablediff.Field { return d.fields }

// Scan streams every row of the table.
func (d *TableDataset) Scan(ctx context.Context, fn func(tablediff.Record) error) error {
	rows, err := d.db.WithContext(ctx).Table(d.table).Rows()
	if err != nil {
		return fmt.Errorf("failed to query table %s: %w", d.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns of %s: %w", d.table, err)
	}

	types := make(map[string]string, len(d.fields))
	for _, f := range d.fields {
		types[f.Name] = f.Type
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for n := 0; rows.Next(); n++ {
		if n%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan row of %s: %w", d.table, err)
		}

		rec := make(tablediff.Record, len(columns))
		for i, col := range columns {
			rec[col] = columnValue(types[col], values[i])
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read table %s: %w", d.table, err)
	}
	return nil
}

// columnValue converts a driver value using the declared column type, so DATE
// columns become dates and DATETIME/TIMESTAMP columns become timestamps even
// when the driver returns them as text.
func columnValue(colType string, v any) tablediff.Value {
	switch {
	case strings.HasPrefix(colType, "datetime"), strings.HasPrefix(colType, "timestamp"):
		if t, ok := asTime(v, time.DateTime, time.RFC3339Nano); ok {
			return tablediff.DateTime(t)
		}
	case strings.HasPrefix(colType, "date"):
		if t, ok := asTime(v, time.DateOnly, time.DateTime, time.RFC3339Nano); ok {
			return tablediff.Date(t)
		}
	}
	return tablediff.FromAny(v)
}

func asTime(v any, layouts ...string) (time.Time, bool) {
	var s string
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
