package compare

import (
	"fmt"
	"io"
	"sort"

	"table-compare/core/tablediff"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	addedColor    = color.New(color.FgHiGreen).SprintFunc()
	deletedColor  = color.New(color.FgHiRed).SprintFunc()
	modifiedColor = color.New(color.FgHiYellow).SprintFunc()
	mutedColor    = color.New(color.FgHiBlack).SprintFunc()
)

func paintStatus(s tablediff.Status) string {
	switch s {
	case tablediff.StatusAdded:
		return addedColor(s)
	case tablediff.StatusDeleted:
		return deletedColor(s)
	case tablediff.StatusModified:
		return modifiedColor(s)
	default:
		return mutedColor(s)
	}
}

func paintDecision(d tablediff.Decision) string {
	switch d {
	case tablediff.DecisionAccepted:
		return addedColor(d)
	case tablediff.DecisionRejected:
		return deletedColor(d)
	default:
		return string(d)
	}
}

// Render writes the visible records of report as a table. Rows are numbered
// 1..n after filtering. Change pairs render as "old -> new" and decisions are
// shown for Added and Modified rows only.
func Render(w io.Writer, report *tablediff.Report, decisions *tablediff.DecisionStore, filter tablediff.FilterState) error {
	table := tablewriter.NewWriter(w)

	header := make([]any, 0, len(report.Fields)+3)
	header = append(header, "#", "Status")
	for _, f := range report.Fields {
		header = append(header, f)
	}
	header = append(header, "Decision")
	table.Header(header...)

	for i, rec := range filter.Visible(report) {
		row := make([]string, 0, len(header))
		row = append(row, fmt.Sprint(i+1), paintStatus(rec.Status))
		for _, cell := range rec.Cells {
			if cell.Changed {
				row = append(row, modifiedColor(cell.OldValue().Format()+" -> "+cell.Value.Format()))
			} else {
				row = append(row, cell.Value.Format())
			}
		}
		decision := ""
		if rec.Status.Actionable() && decisions != nil {
			decision = paintDecision(decisions.Get(rec.Key))
		}
		row = append(row, decision)

		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

// RenderSummary writes the per-status counts, the decision counts and the
// number of changes per field.
func RenderSummary(w io.Writer, report *tablediff.Report, decisions *tablediff.DecisionStore) {
	s := report.Summary
	fmt.Fprintf(w, "Join field: %s\n", report.JoinField)
	fmt.Fprintf(w, "Records: %d  %s %d  %s %d  %s %d  %s %d\n", s.Total,
		paintStatus(tablediff.StatusAdded), s.Added,
		paintStatus(tablediff.StatusDeleted), s.Deleted,
		paintStatus(tablediff.StatusModified), s.Modified,
		paintStatus(tablediff.StatusUnchanged), s.Unchanged)

	if decisions != nil {
		counts := decisions.Counts()
		fmt.Fprintf(w, "Decisions: Pending %d  Accepted %d  Rejected %d\n",
			counts[tablediff.DecisionPending],
			counts[tablediff.DecisionAccepted],
			counts[tablediff.DecisionRejected])
	}

	if len(s.FieldChanges) == 0 {
		return
	}
	fields := make([]string, 0, len(s.FieldChanges))
	for f := range s.FieldChanges {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		if s.FieldChanges[fields[i]] != s.FieldChanges[fields[j]] {
			return s.FieldChanges[fields[i]] > s.FieldChanges[fields[j]]
		}
		return fields[i] < fields[j]
	})
	fmt.Fprintln(w, "Changed fields:")
	for _, f := range fields {
		fmt.Fprintf(w, "  %s: %d\n", f, s.FieldChanges[f])
	}
}
