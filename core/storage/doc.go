// Package storage provides an abstraction layer for object storage services.
//
// The Client interface hides the SDK in use behind the handful of operations this
// service needs: a raw delimiter listing (one page at a time, with continuation
// tokens), bucket existence, and single-object get, put and stat.
//
// # Drivers
//
//   - minio (default): minio-go Core, which exposes ListObjectsV2 pages directly.
//     Works against MinIO and AWS S3.
//   - s3: aws-sdk-go-v2. Credentials fall back to the default AWS chain when no
//     access key is configured.
//
// # Errors
//
// Backend failures are returned as *Error carrying the operation, bucket and key.
// Missing objects and buckets additionally match ErrNotFound.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	page, err := client.ListPage(ctx, "ai2-llm", storage.ListOptions{Prefix: "logs/", Delimiter: "/"})
package storage
