package resolve

import (
	"context"
	"errors"

	"object-resolver/feature/manifest"

	"go.uber.org/zap"
)

// ErrManifestsDisabled is returned when persistence is requested without a database.
var ErrManifestsDisabled = errors.New("manifest persistence is not configured")

// ManifestStore persists resolved key lists.
type ManifestStore interface {
	Save(ctx context.Context, bucket string, patterns, keys []string) (*manifest.Manifest, error)
}

// Service handles pattern resolution for the default bucket.
type Service struct {
	resolver    *Resolver
	bucket      string
	logger      *zap.Logger
	manifests   ManifestStore
	concurrency int
}

// NewService creates a new resolve service. manifests may be nil.
func NewService(resolver *Resolver, bucket string, logger *zap.Logger, manifests ManifestStore, concurrency int) *Service {
	return &Service{
		resolver:    resolver,
		bucket:      bucket,
		logger:      logger,
		manifests:   manifests,
		concurrency: concurrency,
	}
}

// Bucket returns bucket, or the configured default when it is empty.
func (s *Service) Bucket(bucket string) string {
	if bucket == "" {
		return s.bucket
	}
	return bucket
}

// Resolve expands patterns in bucket.
func (s *Service) Resolve(ctx context.Context, bucket string, patterns []string) ([]string, error) {
	return s.resolver.Resolve(ctx, s.Bucket(bucket), patterns)
}

// ResolveAndRecord expands patterns and stores the result as a manifest.
func (s *Service) ResolveAndRecord(ctx context.Context, bucket string, patterns []string) ([]string, *manifest.Manifest, error) {
	if s.manifests == nil {
		return nil, nil, ErrManifestsDisabled
	}

	bucket = s.Bucket(bucket)
	keys, err := s.resolver.Resolve(ctx, bucket, patterns)
	if err != nil {
		return nil, nil, err
	}

	m, err := s.manifests.Save(ctx, bucket, patterns, keys)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("Recorded manifest", zap.String("id", m.ID), zap.Int("keys", m.KeyCount))
	return keys, m, nil
}

// ResolveBatch expands independent pattern sets concurrently.
func (s *Service) ResolveBatch(ctx context.Context, bucket string, sets [][]string) ([][]string, error) {
	return s.resolver.ResolveEach(ctx, s.Bucket(bucket), sets, s.concurrency)
}
