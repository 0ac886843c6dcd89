package integrity

import (
	"context"
	"errors"

	"object-resolver/core/metrics"
	"object-resolver/core/reconcile"
	"object-resolver/core/storage"
	"object-resolver/feature/integrity/checks"
	"object-resolver/feature/manifest"
	"object-resolver/feature/resolve"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by checks that need the database when none is configured.
var ErrNoDatabase = errors.New("database is not configured")

// ManifestReader loads stored manifests.
type ManifestReader interface {
	Get(ctx context.Context, id string) (*manifest.Detail, error)
}

// ManifestReport is the result of re-checking a stored manifest against the bucket.
type ManifestReport struct {
	ID      string   `json:"id"`
	Bucket  string   `json:"bucket"`
	Total   int      `json:"total"`
	Missing []string `json:"missing"`
}

// DriftReport compares a stored manifest with a fresh resolution of its patterns.
type DriftReport struct {
	ID       string                   `json:"id"`
	Bucket   string                   `json:"bucket"`
	Patterns []string                 `json:"patterns"`
	Plan     *reconcile.ReconcilePlan `json:"plan"`
}

// Service handles integrity checks.
type Service struct {
	client    storage.Client
	bucket    string
	prefixes  []string
	logger    *zap.Logger
	db        *gorm.DB
	manifests ManifestReader
	resolver  *resolve.Resolver
}

// NewService creates a new integrity service. db, manifests and m may be nil.
func NewService(client storage.Client, bucket string, prefixes []string, logger *zap.Logger, db *gorm.DB, manifests ManifestReader, m *metrics.Metrics) *Service {
	return &Service{
		client:    client,
		bucket:    bucket,
		prefixes:  prefixes,
		logger:    logger,
		db:        db,
		manifests: manifests,
		resolver:  resolve.NewResolver(client, logger, m),
	}
}

// CheckStructure returns the configured prefixes that hold no objects.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.prefixes)
}

// FixStructure creates folder markers for missing prefixes.
func (s *Service) FixStructure(ctx context.Context, missing []string) ([]string, error) {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckManifest reports the keys of a stored manifest that no longer exist.
func (s *Service) CheckManifest(ctx context.Context, id string) (*ManifestReport, error) {
	if s.manifests == nil {
		return nil, ErrNoDatabase
	}

	detail, err := s.manifests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	missing, err := checks.CheckObjects(ctx, s.client, detail.Bucket, detail.Keys)
	if err != nil {
		return nil, err
	}

	return &ManifestReport{
		ID:      detail.ID,
		Bucket:  detail.Bucket,
		Total:   len(detail.Keys),
		Missing: missing,
	}, nil
}

// CheckDrift re-resolves the patterns of a stored manifest and reports how the
// current key list differs from the recorded one.
func (s *Service) CheckDrift(ctx context.Context, id string) (*DriftReport, error) {
	if s.manifests == nil {
		return nil, ErrNoDatabase
	}

	detail, err := s.manifests.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.resolver.Resolve(ctx, detail.Bucket, detail.Patterns)
	if err != nil {
		return nil, err
	}

	plan := reconcile.Reconcile(detail.Keys, current)
	if !plan.InSync() {
		s.logger.Warn("Manifest drift detected",
			zap.String("id", detail.ID),
			zap.Int("added", plan.Summary.Added),
			zap.Int("removed", plan.Summary.Removed),
			zap.Int("count_changed", plan.Summary.CountChanged),
		)
	}

	return &DriftReport{
		ID:       detail.ID,
		Bucket:   detail.Bucket,
		Patterns: detail.Patterns,
		Plan:     plan,
	}, nil
}

// CheckSchema verifies the manifest tables against their models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return checks.CheckSchema(s.db, manifest.Models()...)
}
