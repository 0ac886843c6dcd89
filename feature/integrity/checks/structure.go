package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"object-resolver/core/storage"

	"go.uber.org/zap"
)

// CheckStructure returns the prefixes under which the bucket holds nothing.
// One listing page per prefix is enough to tell.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, prefixes []string) ([]string, error) {
	if err := requireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	missing := []string{}
	for _, prefix := range prefixes {
		page, err := client.ListPage(ctx, bucket, storage.ListOptions{Prefix: prefix, Delimiter: "/"})
		if err != nil {
			return nil, fmt.Errorf("failed to list prefix %q: %w", prefix, err)
		}
		if len(page.Keys) == 0 && len(page.CommonPrefixes) == 0 {
			missing = append(missing, prefix)
		}
	}

	return missing, nil
}

// FixStructure creates an empty folder marker for every missing prefix that
// names a folder. Other prefixes are skipped.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, missing []string) ([]string, error) {
	fixed := []string{}
	for _, prefix := range missing {
		if prefix == "" || !strings.HasSuffix(prefix, "/") {
			logger.Warn("Skipping prefix that is not a folder", zap.String("prefix", prefix))
			continue
		}

		if err := client.PutObject(ctx, bucket, prefix, bytes.NewReader([]byte{}), 0); err != nil {
			logger.Error("Failed to create folder", zap.String("prefix", prefix), zap.Error(err))
			return fixed, err
		}
		logger.Info("Created missing folder", zap.String("prefix", prefix))
		fixed = append(fixed, prefix)
	}
	return fixed, nil
}

func requireBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}
