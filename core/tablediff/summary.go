package tablediff

// Summary provides aggregate statistics for a report.
type Summary struct {
	// Total is the number of distinct join keys.
	Total int `json:"total"`

	// Added counts keys only in the new dataset.
	Added int `json:"added"`

	// Deleted counts keys only in the old dataset.
	Deleted int `json:"deleted"`

	// Modified counts keys with significant differences.
	Modified int `json:"modified"`

	// Unchanged counts keys without significant differences.
	Unchanged int `json:"unchanged"`

	// FieldChanges maps a field name to the number of records holding a change pair for it.
	FieldChanges map[string]int `json:"field_changes"`
}

// Count returns the number of records with status s.
func (s Summary) Count(st Status) int {
	switch st {
	case StatusAdded:
		return s.Added
	case StatusDeleted:
		return s.Deleted
	case StatusModified:
		return s.Modified
	case StatusUnchanged:
		return s.Unchanged
	default:
		return 0
	}
}

func summarize(r *Report) Summary {
	s := Summary{
		Total:        len(r.Records),
		FieldChanges: make(map[string]int),
	}

	for _, rec := range r.Records {
		switch rec.Status {
		case StatusAdded:
			s.Added++
		case StatusDeleted:
			s.Deleted++
		case StatusModified:
			s.Modified++
		case StatusUnchanged:
			s.Unchanged++
		}
		for _, f := range rec.ChangedFields(r.Fields) {
			s.FieldChanges[f]++
		}
	}

	return s
}
