package tablediff

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExportHeader returns the header row for an export of fields.
func ExportHeader(fields []string) []string {
	header := make([]string, 0, len(fields)+2)
	header = append(header, "Status")
	header = append(header, fields...)
	header = append(header, "Decision")
	return header
}

// Export writes the visible records of report as CSV to w.
//
// The header is Status, the report fields, then Decision. Each record passing
// filter produces one row of decision-resolved, formatted values in report
// order. An empty report is rejected with ErrNoData; a report whose records
// are all filtered out produces a header-only document.
func Export(w io.Writer, report *Report, filter FilterState, decisions *DecisionStore) error {
	if report.Len() == 0 {
		return ErrNoData
	}
	if decisions == nil {
		decisions = NewDecisionStore(report)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader(report.Fields)); err != nil {
		return &IOError{Err: err}
	}

	row := make([]string, len(report.Fields)+2)
	for _, rec := range report.Records {
		if !filter.Allows(rec.Status) {
			continue
		}

		row[0] = string(rec.Status)
		for i := range report.Fields {
			row[i+1] = decisions.ResolvedValue(rec, i).Format()
		}
		row[len(row)-1] = string(decisions.Get(rec.Key))

		if err := writer.Write(row); err != nil {
			return &IOError{Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &IOError{Err: err}
	}
	return nil
}

// ExportFile writes the export to path, creating or truncating it.
// Failures to create or write the file are returned as *IOError.
func ExportFile(path string, report *Report, filter FilterState, decisions *DecisionStore) (err error) {
	if report.Len() == 0 {
		return ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Path: path, Err: cerr}
		}
	}()

	buf := bufio.NewWriter(f)
	if err := Export(buf, report, filter, decisions); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return err
	}
	if err := buf.Flush(); err != nil {
		return &IOError{Path: path, Err: fmt.Errorf("flush: %w", err)}
	}
	return nil
}
