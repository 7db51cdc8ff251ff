package tablediff

import (
	"context"
	"sort"
)

// Field describes one column of a dataset schema.
type Field struct {
	// Name is the unique field name.
	Name string `json:"name"`
	// Type is the source type name (e.g. "varchar(255)", "text"). Informational only.
	Type string `json:"type,omitempty"`
}

// Record maps field names to values for one row.
type Record map[string]Value

// Get returns the value of field and whether the record holds it.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]
	return v, ok
}

// Dataset is a tabular source: an ordered schema plus an iterator over records.
// Implementations live in core/source.
type Dataset interface {
	// Name identifies the dataset in logs and error messages.
	Name() string

	// Fields returns the ordered schema.
	Fields() []Field

	// Scan calls fn for each record in source order. Iteration stops at the
	// first error returned by fn or by the underlying source.
	Scan(ctx context.Context, fn func(Record) error) error
}

// FieldNames returns the names of fields in schema order.
func FieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// JoinCandidates returns the sorted field names present in both datasets.
func JoinCandidates(oldFields, newFields []Field) []string {
	present := make(map[string]struct{}, len(newFields))
	for _, f := range newFields {
		present[f.Name] = struct{}{}
	}

	var common []string
	for _, f := range oldFields {
		if _, ok := present[f.Name]; ok {
			common = append(common, f.Name)
			delete(present, f.Name)
		}
	}
	sort.Strings(common)
	return common
}

// ResolveJoinField returns joinField, or the first field of the old schema when it is empty.
func ResolveJoinField(joinField string, oldFields []Field) (string, error) {
	if len(oldFields) == 0 {
		return "", ErrNoFields
	}
	if joinField == "" {
		return oldFields[0].Name, nil
	}
	return joinField, nil
}

// MemoryDataset is an in-memory Dataset.
type MemoryDataset struct {
	name    string
	fields  []Field
	records []Record
}

// NewMemoryDataset creates a dataset over the given schema and records.
func NewMemoryDataset(name string, fields []Field, records ...Record) *MemoryDataset {
	return &MemoryDataset{name: name, fields: fields, records: records}
}

// Name returns the dataset name.
func (m *MemoryDataset) Name() string { return m.name }

// Fields returns the dataset schema.
func (m *MemoryDataset) Fields() []Field { return m.fields }

// Append adds a record to the dataset.
func (m *MemoryDataset) Append(r Record) { m.records = append(m.records, r) }

// Scan iterates the records in insertion order.
func (m *MemoryDataset) Scan(ctx context.Context, fn func(Record) error) error {
	for _, r := range m.records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
