package source

import (
	"fmt"
	"strings"
)

// Kind identifies where a dataset is read from.
type Kind string

const (
	// KindFile is a CSV file on the local filesystem.
	KindFile Kind = "file"
	// KindStorage is a CSV object in the configured storage bucket.
	KindStorage Kind = "storage"
	// KindTable is a database table.
	KindTable Kind = "table"
)

// Locator points at one dataset.
type Locator struct {
	// Kind is the source type.
	Kind Kind `json:"kind" validate:"required,oneof=file storage table"`
	// Target is the file path, object key or table name.
	Target string `json:"target" validate:"required"`
}

// String returns the locator in the form accepted by ParseLocator.
func (l Locator) String() string {
	switch l.Kind {
	case KindStorage:
		return "s3:" + l.Target
	case KindTable:
		return "db:" + l.Target
	default:
		return l.Target
	}
}

// ParseLocator parses a dataset reference:
//
//	data/old.csv, file:data/old.csv   local CSV file
//	s3:parcels/2024.csv               CSV object in the storage bucket
//	db:parcels_2024                   database table
func ParseLocator(s string) (Locator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Locator{}, fmt.Errorf("empty dataset reference")
	}

	prefix, rest, found := strings.Cut(s, ":")
	if found {
		switch strings.ToLower(prefix) {
		case "file":
			return Locator{Kind: KindFile, Target: rest}, nonEmpty(rest, s)
		case "s3", "storage":
			return Locator{Kind: KindStorage, Target: strings.TrimPrefix(rest, "/")}, nonEmpty(rest, s)
		case "db", "table":
			return Locator{Kind: KindTable, Target: rest}, nonEmpty(rest, s)
		}
	}

	// Anything else, including Windows drive letters, is a file path.
	return Locator{Kind: KindFile, Target: s}, nil
}

func nonEmpty(target, raw string) error {
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("dataset reference %q has no target", raw)
	}
	return nil
}
