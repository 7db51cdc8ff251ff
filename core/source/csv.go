package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"table-compare/core/tablediff"
)

const utf8BOM = "\ufeff"

// ContextCheckInterval is how often (in rows) readers check for context cancellation.
var ContextCheckInterval = 100

// Table is a fully parsed CSV document.
type Table struct {
	Fields  []tablediff.Field
	Records []tablediff.Record
}

// readHeader reads the header row of r and returns the schema.
func readHeader(r *csv.Reader) ([]tablediff.Field, error) {
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	fields := make([]tablediff.Field, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field %q in header", name)
		}
		seen[name] = struct{}{}
		fields = append(fields, tablediff.Field{Name: name, Type: "text"})
	}
	return fields, nil
}

func newCSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

// scanCSV streams the data rows of r after the header. Empty cells are null;
// cells missing from short rows are absent from the record.
func scanCSV(ctx context.Context, r io.Reader, fn func([]tablediff.Field, tablediff.Record) error) ([]tablediff.Field, error) {
	reader := newCSVReader(r)
	fields, err := readHeader(reader)
	if err != nil || fields == nil {
		return fields, err
	}

	for line := 1; ; line++ {
		if line%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fields, err
			}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return fields, nil
		}
		if err != nil {
			return fields, fmt.Errorf("failed to read row %d: %w", line, err)
		}

		rec := make(tablediff.Record, len(fields))
		for i, cell := range row {
			if i >= len(fields) {
				break
			}
			if cell == "" {
				rec[fields[i].Name] = tablediff.Null()
			} else {
				rec[fields[i].Name] = tablediff.String(cell)
			}
		}
		if err := fn(fields, rec); err != nil {
			return fields, err
		}
	}
}

// ParseCSV reads a whole CSV document.
func ParseCSV(ctx context.Context, r io.Reader) (*Table, error) {
	t := &Table{}
	fields, err := scanCSV(ctx, r, func(_ []tablediff.Field, rec tablediff.Record) error {
		t.Records = append(t.Records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.Fields = fields
	return t, nil
}

// FileDataset is a CSV file. The header is read when the dataset is opened and
// the rows are re-read on every Scan, so a re-comparison sees the current file.
type FileDataset struct {
	path   string
	open   func() (*os.File, error)
	fields []tablediff.Field
}

// OpenFile opens a CSV file dataset and reads its header.
func OpenFile(path string) (*FileDataset, error) {
	return openFileDataset(path, func() (*os.File, error) { return os.Open(path) })
}

// OpenFileIn opens a CSV file dataset confined to dir. name may be relative to
// dir or an absolute path inside it. Names that leave dir, including through
// symlinks, fail with ErrFileDenied.
func OpenFileIn(dir, name string) (*FileDataset, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid data directory %s: %w", dir, err)
	}

	rel := name
	if filepath.IsAbs(name) {
		if rel, err = filepath.Rel(dir, name); err != nil {
			return nil, fmt.Errorf("%s: %w", name, ErrFileDenied)
		}
	}
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%s: %w", name, ErrFileDenied)
	}

	return openFileDataset(rel, func() (*os.File, error) {
		root, err := os.OpenRoot(dir)
		if err != nil {
			return nil, err
		}
		defer root.Close()

		f, err := root.Open(rel)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrFileDenied, err)
		}
		return f, err
	})
}

func openFileDataset(path string, open func() (*os.File, error)) (*FileDataset, error) {
	f, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	fields, err := readHeader(newCSVReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &FileDataset{path: path, open: open, fields: fields}, nil
}

// Name returns the file path.
func (d *FileDataset) Name() string { return d.path }

// Fields returns the header fields.
func (d *FileDataset) Fields() []tablediff.Field { return d.fields }

// Scan streams the file rows.
func (d *FileDataset) Scan(ctx context.Context, fn func(tablediff.Record) error) error {
	f, err := d.open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", d.path, err)
	}
	defer f.Close()

	_, err = scanCSV(ctx, f, func(_ []tablediff.Field, rec tablediff.Record) error {
		return fn(rec)
	})
	return err
}
