package resolve

import (
	"object-resolver/core/metrics"
	"object-resolver/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new resolve feature. manifests may be nil.
func NewFeature(lister storage.Lister, bucket string, logger *zap.Logger, m *metrics.Metrics, manifests ManifestStore, concurrency int) *Feature {
	resolver := NewResolver(lister, logger, m)
	service := NewService(resolver, bucket, logger, manifests, concurrency)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "resolve"
}

// IsEnabled returns whether the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Service returns the underlying resolve service.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
