package tablediff

import "strings"

// Status is the classification of a record between the old and new dataset.
type Status string

const (
	// StatusAdded marks a key present only in the new dataset.
	StatusAdded Status = "Added"
	// StatusDeleted marks a key present only in the old dataset.
	StatusDeleted Status = "Deleted"
	// StatusModified marks a key whose significant fields differ.
	StatusModified Status = "Modified"
	// StatusUnchanged marks a key whose significant fields are equal.
	StatusUnchanged Status = "Unchanged"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusAdded, StatusDeleted, StatusModified, StatusUnchanged}

// Actionable reports whether records with this status can hold a decision.
func (s Status) Actionable() bool {
	return s == StatusAdded || s == StatusModified
}

// ParseStatus parses a status name, case-insensitively.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, true
		}
	}
	return "", false
}

// Cell is the presentation value of one field of a DiffRecord.
// A changed cell carries both sides; otherwise Value is the single resolved value.
type Cell struct {
	// Value is the single value, or the new value of a change pair.
	Value Value `json:"value"`

	// Old is the old value of a change pair, nil otherwise.
	Old *Value `json:"old,omitempty"`

	// Changed marks a change pair.
	Changed bool `json:"changed,omitempty"`
}

// New returns the new side of the cell (the single value when not changed).
func (c Cell) New() Value { return c.Value }

// OldValue returns the old side of a change pair, or the single value.
func (c Cell) OldValue() Value {
	if c.Old == nil {
		return c.Value
	}
	return *c.Old
}

// DiffRecord is one row of the report.
type DiffRecord struct {
	// Key is the join-key value.
	Key Value `json:"key"`

	// Status is the classification of the record.
	Status Status `json:"status"`

	// Cells holds one cell per report field, in Report.Fields order.
	Cells []Cell `json:"cells"`
}

// ChangedFields returns the names of fields holding a change pair.
func (r DiffRecord) ChangedFields(fields []string) []string {
	var out []string
	for i, c := range r.Cells {
		if c.Changed && i < len(fields) {
			out = append(out, fields[i])
		}
	}
	return out
}

// Report is the ordered result of one comparison.
type Report struct {
	// JoinField is the field used to match records.
	JoinField string `json:"join_field"`

	// Fields are the compared fields in schema order.
	Fields []string `json:"fields"`

	// Significant are the fields checked for modifications, in schema order.
	Significant []string `json:"significant"`

	// Records are sorted by ascending join key.
	Records []DiffRecord `json:"records"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	index map[keyID]int
}

// Len returns the number of records.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Records)
}

// Find returns the record with the given key.
func (r *Report) Find(key Value) (DiffRecord, bool) {
	if r == nil {
		return DiffRecord{}, false
	}
	i, ok := r.index[idOf(key)]
	if !ok {
		return DiffRecord{}, false
	}
	return r.Records[i], true
}

// Lookup finds a record by the display form of its key.
// It is used by hosts that only have the key as text (CLI flags, URLs).
func (r *Report) Lookup(text string) (DiffRecord, bool) {
	if r == nil {
		return DiffRecord{}, false
	}
	for _, rec := range r.Records {
		if rec.Key.Format() == text || rec.Key.String() == text {
			return rec, true
		}
	}
	return DiffRecord{}, false
}

// FieldIndex returns the cell index of field, or -1.
func (r *Report) FieldIndex(field string) int {
	for i, f := range r.Fields {
		if f == field {
			return i
		}
	}
	return -1
}
