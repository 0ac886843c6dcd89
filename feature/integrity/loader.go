package integrity

import (
	"object-resolver/core/metrics"
	"object-resolver/core/storage"
	"object-resolver/feature/manifest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new integrity feature. db and m may be nil.
func NewFeature(client storage.Client, bucket string, prefixes []string, logger *zap.Logger, db *gorm.DB, m *metrics.Metrics) *Feature {
	var manifests ManifestReader
	if db != nil {
		manifests = manifest.NewStore(db)
	}
	service := NewService(client, bucket, prefixes, logger, db, manifests, m)
	return &Feature{
		service: service,
		handler: NewHandler(service),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled returns whether the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Service returns the underlying integrity service.
func (f *Feature) Service() *Service {
	return f.service
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
