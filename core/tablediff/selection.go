package tablediff

import "strings"

// DefaultIgnoredFields lists auto-generated fields that are not significant by default.
var DefaultIgnoredFields = []string{"fid", "id", "objectid", "gid", "created_date", "modified_date", "timestamp"}

// FieldSelection is the set of significant fields, i.e. the fields whose
// differences make a record Modified rather than Unchanged.
type FieldSelection map[string]struct{}

// NewFieldSelection builds a selection from field names.
func NewFieldSelection(fields ...string) FieldSelection {
	s := make(FieldSelection, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

// DefaultSelection selects every field except those in ignored (case-insensitive).
// A nil ignored list falls back to DefaultIgnoredFields.
func DefaultSelection(fields []string, ignored []string) FieldSelection {
	if ignored == nil {
		ignored = DefaultIgnoredFields
	}
	skip := make(map[string]struct{}, len(ignored))
	for _, f := range ignored {
		skip[strings.ToLower(f)] = struct{}{}
	}

	s := make(FieldSelection, len(fields))
	for _, f := range fields {
		if _, ok := skip[strings.ToLower(f)]; ok {
			continue
		}
		s[f] = struct{}{}
	}
	return s
}

// AllFields selects every field.
func AllFields(fields []string) FieldSelection {
	return NewFieldSelection(fields...)
}

// Has reports whether field is significant.
func (s FieldSelection) Has(field string) bool {
	_, ok := s[field]
	return ok
}

// Ordered returns the selected fields in the order of fields.
// Selected names that are not in fields are dropped.
func (s FieldSelection) Ordered(fields []string) []string {
	out := make([]string, 0, len(s))
	for _, f := range fields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a copy of s.
func (s FieldSelection) Clone() FieldSelection {
	c := make(FieldSelection, len(s))
	for f := range s {
		c[f] = struct{}{}
	}
	return c
}
