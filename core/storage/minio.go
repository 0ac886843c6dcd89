package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioCore is the subset of minio.Core used by minioClient.
type minioCore interface {
	ListObjectsV2(bucketName, objectPrefix, startAfter, continuationToken, delimiter string, maxkeys int) (minio.ListBucketV2Result, error)
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, minio.ObjectInfo, http.Header, error)
	PutObject(ctx context.Context, bucket, object string, data io.Reader, size int64, md5Base64, sha256Hex string, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
}

const awsEndpoint = "s3.amazonaws.com"

type minioClient struct {
	core minioCore
}

func newMinioClient(cfg Config) (*minioClient, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	if endpoint == "" {
		endpoint = awsEndpoint
	}

	core, err := minio.NewCore(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	// Minio connects lazily; the transport timeouts bound connection setup.
	return &minioClient{core: core}, nil
}

func (c *minioClient) ListPage(ctx context.Context, bucket string, opts ListOptions) (*Page, error) {
	// Core.ListObjectsV2 takes no context, so cancellation is only observed between pages.
	if err := ctx.Err(); err != nil {
		return nil, newError("list", bucket, opts.Prefix, err)
	}

	res, err := c.core.ListObjectsV2(bucket, opts.Prefix, "", opts.ContinuationToken, opts.Delimiter, 0)
	if err != nil {
		return nil, newError("list", bucket, opts.Prefix, minioErr(err))
	}

	page := &Page{
		Keys:           make([]string, 0, len(res.Contents)),
		CommonPrefixes: make([]string, 0, len(res.CommonPrefixes)),
	}
	for _, obj := range res.Contents {
		page.Keys = append(page.Keys, obj.Key)
	}
	for _, cp := range res.CommonPrefixes {
		page.CommonPrefixes = append(page.CommonPrefixes, cp.Prefix)
	}
	if res.IsTruncated {
		page.NextToken = res.NextContinuationToken
	}
	return page, nil
}

func (c *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	ok, err := c.core.BucketExists(ctx, bucket)
	if err != nil {
		return false, newError("bucket_exists", bucket, "", err)
	}
	return ok, nil
}

func (c *minioClient) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	body, _, _, err := c.core.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, newError("get", bucket, key, minioErr(err))
	}
	return body, nil
}

func (c *minioClient) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	if _, err := c.core.PutObject(ctx, bucket, key, r, size, "", "", minio.PutObjectOptions{}); err != nil {
		return newError("put", bucket, key, minioErr(err))
	}
	return nil
}

func (c *minioClient) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	info, err := c.core.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, newError("stat", bucket, key, minioErr(err))
	}
	return ObjectInfo{
		Key:          info.Key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  info.ContentType,
		LastModified: info.LastModified,
	}, nil
}

// minioErr marks missing keys and buckets with ErrNotFound.
func minioErr(err error) error {
	var resp minio.ErrorResponse
	if !errors.As(err, &resp) {
		return err
	}
	switch resp.Code {
	case minio.NoSuchKey, minio.NoSuchBucket:
		return notFound{err: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return notFound{err: err}
	}
	return err
}
