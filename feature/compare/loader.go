package compare

import (
	"table-compare/core/source"
	"table-compare/core/storage"
	"table-compare/core/tablediff"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the compare feature. File locators are confined to
// cfg.DataDir, or rejected when it is empty.
func NewFeature(opener *source.Opener, client storage.Client, bucket string, cfg tablediff.Config, logger *zap.Logger) *Feature {
	svc := NewService(opener.Confined(cfg.DataDir), client, bucket, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "compare"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the session service, used to run the expiry loop.
func (f *Feature) Service() *Service {
	return f.service
}
