package checks

import (
	"context"
	"errors"
	"fmt"

	"object-resolver/core/storage"
)

// CheckObjects returns the keys that no longer exist in the bucket.
func CheckObjects(ctx context.Context, client storage.Client, bucket string, keys []string) ([]string, error) {
	if err := requireBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	missing := []string{}
	for _, key := range keys {
		if _, err := client.StatObject(ctx, bucket, key); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				missing = append(missing, key)
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", key, err)
		}
	}

	return missing, nil
}
