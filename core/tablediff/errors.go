package tablediff

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJoinField is returned when the join field is not part of the compared schema.
	ErrInvalidJoinField = errors.New("invalid join field")

	// ErrNoFields is returned when a dataset schema has no fields to compare or join on.
	ErrNoFields = errors.New("no fields to compare")

	// ErrNoData is returned when an export is requested without any diff records.
	ErrNoData = errors.New("no data to export")
)

// IOError reports a failure writing an export to its destination.
type IOError struct {
	// Path is the destination that could not be written.
	Path string
	// Err is the underlying cause.
	Err error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to write export: %v", e.Err)
	}
	return fmt.Sprintf("failed to write export to %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func invalidJoinField(field, dataset string) error {
	return fmt.Errorf("%w: %q is not a field of %s", ErrInvalidJoinField, field, dataset)
}
