package source

import (
	"context"
	"errors"
	"fmt"

	"table-compare/core/storage"
	"table-compare/core/tablediff"

	"gorm.io/gorm"
)

var (
	// ErrUnavailable is returned when a locator needs a backend that is not configured.
	ErrUnavailable = errors.New("dataset source not configured")
	// ErrFileDenied is returned for file locators the opener may not read.
	ErrFileDenied = errors.New("file dataset not allowed")
)

// Opener opens datasets from locators. DB and Storage are optional; locators
// needing a missing backend fail with ErrUnavailable.
type Opener struct {
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
	Cache   *Cache

	// FileRoot confines file locators to a directory. Empty means any path.
	FileRoot string
	// DenyFiles rejects every file locator.
	DenyFiles bool
}

// Confined returns a copy of o whose file locators are limited to root.
// An empty root disables file locators.
func (o *Opener) Confined(root string) *Opener {
	c := *o
	c.FileRoot = root
	c.DenyFiles = root == ""
	return &c
}

// Open opens the dataset loc points at.
func (o *Opener) Open(ctx context.Context, loc Locator) (tablediff.Dataset, error) {
	switch loc.Kind {
	case KindFile:
		switch {
		case o.DenyFiles:
			return nil, fmt.Errorf("%s: %w", loc, ErrFileDenied)
		case o.FileRoot != "":
			return OpenFileIn(o.FileRoot, loc.Target)
		}
		return OpenFile(loc.Target)
	case KindStorage:
		if o.Storage == nil {
			return nil, fmt.Errorf("%s: storage %w", loc, ErrUnavailable)
		}
		return OpenObject(ctx, o.Storage, o.Bucket, loc.Target, o.Cache)
	case KindTable:
		if o.DB == nil {
			return nil, fmt.Errorf("%s: database %w", loc, ErrUnavailable)
		}
		return OpenTable(ctx, o.DB, loc.Target)
	default:
		return nil, fmt.Errorf("unknown dataset kind %q", loc.Kind)
	}
}

// OpenRef parses ref and opens the dataset it points at.
func (o *Opener) OpenRef(ctx context.Context, ref string) (tablediff.Dataset, error) {
	loc, err := ParseLocator(ref)
	if err != nil {
		return nil, err
	}
	return o.Open(ctx, loc)
}

// OpenPair opens the old and new datasets of a comparison.
func (o *Opener) OpenPair(ctx context.Context, oldLoc, newLoc Locator) (tablediff.Dataset, tablediff.Dataset, error) {
	oldDS, err := o.Open(ctx, oldLoc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open old dataset: %w", err)
	}
	newDS, err := o.Open(ctx, newLoc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open new dataset: %w", err)
	}
	return oldDS, newDS, nil
}
