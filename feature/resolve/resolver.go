package resolve

import (
	"context"
	"fmt"
	"sort"

	"object-resolver/core/metrics"
	"object-resolver/core/storage"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Delimiter groups keys into one directory level per listing.
const Delimiter = "/"

// Resolver turns wildcard patterns into sorted key lists.
// It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	lister  storage.Lister
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a resolver listing through lister. logger and m may be nil.
func NewResolver(lister storage.Lister, logger *zap.Logger, m *metrics.Metrics) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{lister: lister, logger: logger, metrics: m}
}

// Resolve lists every pattern in bucket and returns the matched keys sorted
// lexicographically. Keys matched by more than one pattern appear once per match.
func (r *Resolver) Resolve(ctx context.Context, bucket string, patterns []string) ([]string, error) {
	if bucket == "" {
		return nil, ErrMissingBucket
	}
	parsed, err := ParsePatterns(patterns)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0)
	for _, p := range parsed {
		before := len(keys)
		keys, err = r.collect(ctx, bucket, p, keys)
		if err != nil {
			return nil, err
		}

		matched := len(keys) - before
		r.logger.Info("Found objects for pattern",
			zap.String("bucket", bucket),
			zap.String("pattern", p.Raw),
			zap.Int("matched", matched),
			zap.Int("total", len(keys)),
		)
		r.metrics.ObservePattern(matched)
	}

	sort.Strings(keys)
	return keys, nil
}

// collect appends the keys of every listing page for p to keys.
func (r *Resolver) collect(ctx context.Context, bucket string, p Pattern, keys []string) ([]string, error) {
	opts := storage.ListOptions{Prefix: p.Prefix, Delimiter: Delimiter}

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, &ListingError{Bucket: bucket, Prefix: p.Prefix, Page: page, Err: err}
		}

		res, err := r.lister.ListPage(ctx, bucket, opts)
		r.metrics.ObservePage(err)
		if err != nil {
			return nil, &ListingError{Bucket: bucket, Prefix: p.Prefix, Page: page, Err: err}
		}

		keys = append(keys, res.Keys...)
		if p.HasSuffix {
			for _, cp := range res.CommonPrefixes {
				keys = append(keys, p.Expand(cp))
			}
		}

		if res.NextToken == "" {
			return keys, nil
		}
		r.logger.Debug("Following continuation token",
			zap.String("pattern", p.Raw),
			zap.Int("page", page),
		)
		opts.ContinuationToken = res.NextToken
	}
}

// ResolveEach resolves independent pattern sets concurrently, one Resolve call
// per set, with at most limit calls in flight (no limit when limit <= 0).
// Every set is validated before any listing starts. The first failure cancels
// the remaining calls and no results are returned.
func (r *Resolver) ResolveEach(ctx context.Context, bucket string, sets [][]string, limit int) ([][]string, error) {
	if bucket == "" {
		return nil, ErrMissingBucket
	}
	for i, patterns := range sets {
		if _, err := ParsePatterns(patterns); err != nil {
			return nil, fmt.Errorf("pattern set %d: %w", i, err)
		}
	}

	results := make([][]string, len(sets))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, patterns := range sets {
		g.Go(func() error {
			keys, err := r.Resolve(gctx, bucket, patterns)
			if err != nil {
				return fmt.Errorf("pattern set %d: %w", i, err)
			}
			results[i] = keys
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
