package tablediff

import (
	"fmt"

	"table-compare/core/utils"
)

// FilterState controls which statuses are visible and exported.
// It never changes the underlying report.
type FilterState struct {
	Added     bool `json:"added"`
	Deleted   bool `json:"deleted"`
	Modified  bool `json:"modified"`
	Unchanged bool `json:"unchanged"`
}

// ShowAll returns a filter with every status visible.
func ShowAll() FilterState {
	return FilterState{Added: true, Deleted: true, Modified: true, Unchanged: true}
}

// FilterOf returns a filter showing only the given statuses.
func FilterOf(statuses ...Status) FilterState {
	var f FilterState
	for _, s := range statuses {
		f.Set(s, true)
	}
	return f
}

// Allows reports whether records with status s pass the filter.
func (f FilterState) Allows(s Status) bool {
	switch s {
	case StatusAdded:
		return f.Added
	case StatusDeleted:
		return f.Deleted
	case StatusModified:
		return f.Modified
	case StatusUnchanged:
		return f.Unchanged
	default:
		return false
	}
}

// Set toggles the visibility of status s.
func (f *FilterState) Set(s Status, visible bool) {
	switch s {
	case StatusAdded:
		f.Added = visible
	case StatusDeleted:
		f.Deleted = visible
	case StatusModified:
		f.Modified = visible
	case StatusUnchanged:
		f.Unchanged = visible
	}
}

// Visible returns the records of r that pass the filter, keeping report order.
func (f FilterState) Visible(r *Report) []DiffRecord {
	if r == nil {
		return nil
	}
	out := make([]DiffRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		if f.Allows(rec.Status) {
			out = append(out, rec)
		}
	}
	return out
}

// ParseFilter parses a comma separated status list such as "added,modified".
// An empty list shows every status.
func ParseFilter(list string) (FilterState, error) {
	names := utils.SplitList(list)
	if len(names) == 0 {
		return ShowAll(), nil
	}
	var f FilterState
	for _, name := range names {
		st, ok := ParseStatus(name)
		if !ok {
			return FilterState{}, fmt.Errorf("unknown status %q", name)
		}
		f.Set(st, true)
	}
	return f, nil
}
