package compare

import (
	"time"

	"table-compare/core/source"
	"table-compare/core/tablediff"
)

// CompareRequest starts a comparison session.
type CompareRequest struct {
	// Old is the dataset compared against.
	Old source.Locator `json:"old"`
	// New is the dataset compared.
	New source.Locator `json:"new"`
	// JoinField matches records. Empty uses the first field of the old dataset.
	JoinField string `json:"join_field" validate:"omitempty,max=255"`
	// Fields are the significant fields. Empty uses the default selection.
	Fields []string `json:"fields" validate:"omitempty,dive,required"`
	// AllFields marks every field significant.
	AllFields bool `json:"all_fields"`
}

// FieldsRequest replaces the significant field selection.
type FieldsRequest struct {
	// Fields are the significant fields.
	Fields []string `json:"fields" validate:"omitempty,dive,required"`
	// All selects every field and overrides Fields.
	All bool `json:"all"`
	// JoinField changes the join field when set.
	JoinField string `json:"join_field" validate:"omitempty,max=255"`
}

// DecisionRequest decides individual records by key.
type DecisionRequest struct {
	// Keys are join-key values in display form.
	Keys []string `json:"keys" validate:"required,min=1,dive,required"`
	// Decision is accept, reject or reset.
	Decision string `json:"decision" validate:"required"`
}

// DecisionAllRequest decides every record with one of the given statuses.
type DecisionAllRequest struct {
	// Statuses are Added and/or Modified. Empty means both.
	Statuses []string `json:"statuses" validate:"omitempty,dive,required"`
	// Decision is accept, reject or reset.
	Decision string `json:"decision" validate:"required"`
}

// ExportRequest uploads an export to the storage bucket.
type ExportRequest struct {
	// Object is the object name below the export prefix. Empty uses <session>.csv.
	Object string `json:"object" validate:"omitempty,max=1024"`
	// Show is a comma separated status filter. Empty exports every status.
	Show string `json:"show"`
}

// RecordView is one visible row of a session report.
type RecordView struct {
	// Row numbers visible rows from 1.
	Row      int                `json:"row"`
	Key      tablediff.Value    `json:"key"`
	Status   tablediff.Status   `json:"status"`
	Decision tablediff.Decision `json:"decision,omitempty"`
	Cells    []tablediff.Cell   `json:"cells"`
}

// SessionView is the API representation of a session.
type SessionView struct {
	ID          string                     `json:"id"`
	Created     time.Time                  `json:"created"`
	Old         string                     `json:"old"`
	New         string                     `json:"new"`
	JoinField   string                     `json:"join_field"`
	Fields      []string                   `json:"fields"`
	Significant []string                   `json:"significant"`
	Summary     tablediff.Summary          `json:"summary"`
	Decisions   map[tablediff.Decision]int `json:"decisions"`
	Filter      tablediff.FilterState      `json:"filter"`
	Records     []RecordView               `json:"records"`
}

// FieldsView describes the fields of a session.
type FieldsView struct {
	// Fields are the old dataset fields in schema order.
	Fields []string `json:"fields"`
	// JoinField is the current join field.
	JoinField string `json:"join_field"`
	// JoinCandidates are the fields present in both datasets.
	JoinCandidates []string `json:"join_candidates"`
	// Significant are the selected significant fields in schema order.
	Significant []string `json:"significant"`
}

// DecisionResult reports how many records a decision applied to.
type DecisionResult struct {
	Applied   int                        `json:"applied"`
	Decisions map[tablediff.Decision]int `json:"decisions"`
}

// ExportResult describes an uploaded export.
type ExportResult struct {
	Bucket string `json:"bucket"`
	Object string `json:"object"`
	Size   int64  `json:"size"`
}
