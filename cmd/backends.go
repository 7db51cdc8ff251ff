package cmd

import (
	"fmt"

	"table-compare/core/config"
	"table-compare/core/database"
	"table-compare/core/source"
	"table-compare/core/storage"

	"go.uber.org/zap"
)

// openBackends builds the dataset opener for the given locators. The database
// is only connected when a locator needs it.
func openBackends(cfg *config.Config, l *zap.Logger, locs ...source.Locator) (*source.Opener, storage.Client, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	opener := &source.Opener{
		Storage: client,
		Bucket:  cfg.Storage.Bucket,
		Cache:   source.NewCache(cfg.Compare.CacheTTL()),
	}

	for _, loc := range locs {
		if loc.Kind != source.KindTable {
			continue
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		l.Debug("Connected to dataset database", zap.String("driver", cfg.Database.Driver))
		opener.DB = db
		break
	}

	return opener, client, nil
}

// parseLocators parses the old and new dataset references.
func parseLocators(oldRef, newRef string) (source.Locator, source.Locator, error) {
	oldLoc, err := source.ParseLocator(oldRef)
	if err != nil {
		return source.Locator{}, source.Locator{}, fmt.Errorf("invalid --old: %w", err)
	}
	newLoc, err := source.ParseLocator(newRef)
	if err != nil {
		return source.Locator{}, source.Locator{}, fmt.Errorf("invalid --new: %w", err)
	}
	return oldLoc, newLoc, nil
}
