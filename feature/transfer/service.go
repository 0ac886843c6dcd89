package transfer

import (
	"context"
	"io"
	"path/filepath"

	"object-resolver/core/metrics"
	"object-resolver/core/storage"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	OpDownload = "download"
	OpUpload   = "upload"
	OpSize     = "size"
)

// Service transfers objects between the bucket and a filesystem.
type Service struct {
	client  storage.Client
	fs      afero.Fs
	bucket  string
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewService creates a new transfer service. A nil fs uses the OS filesystem.
func NewService(client storage.Client, fs afero.Fs, bucket string, logger *zap.Logger, m *metrics.Metrics) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		fs:      fs,
		bucket:  bucket,
		logger:  logger,
		metrics: m,
	}
}

// Bucket returns bucket, or the configured default when it is empty.
func (s *Service) Bucket(bucket string) string {
	if bucket == "" {
		return s.bucket
	}
	return bucket
}

// DownloadToFile writes the object at key into path.
func (s *Service) DownloadToFile(ctx context.Context, bucket, key, path string) (int64, error) {
	bucket = s.Bucket(bucket)
	written, err := s.download(ctx, bucket, key, path)
	s.metrics.ObserveTransfer(OpDownload, written, err)
	if err != nil {
		return 0, &TransferError{Op: OpDownload, Bucket: bucket, Key: key, Path: path, Err: err}
	}

	s.logger.Info("Downloaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("path", path),
		zap.Int64("bytes", written),
	)
	return written, nil
}

func (s *Service) download(ctx context.Context, bucket, key, path string) (int64, error) {
	body, err := s.client.GetObject(ctx, bucket, key)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0755); err != nil {
			return 0, err
		}
	}

	f, err := s.fs.Create(path)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := s.fs.Remove(path); rerr != nil {
			s.logger.Warn("Failed to remove partial download", zap.String("path", path), zap.Error(rerr))
		}
		return 0, err
	}
	return written, nil
}

// UploadFile stores the file at path under key.
func (s *Service) UploadFile(ctx context.Context, bucket, key, path string) (int64, error) {
	bucket = s.Bucket(bucket)
	size, err := s.upload(ctx, bucket, key, path)
	s.metrics.ObserveTransfer(OpUpload, size, err)
	if err != nil {
		return 0, &TransferError{Op: OpUpload, Bucket: bucket, Key: key, Path: path, Err: err}
	}

	s.logger.Info("Uploaded object",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("path", path),
		zap.Int64("bytes", size),
	)
	return size, nil
}

func (s *Service) upload(ctx context.Context, bucket, key, path string) (int64, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	if err := s.client.PutObject(ctx, bucket, key, f, info.Size()); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ObjectSize returns the size in bytes of the object at key.
func (s *Service) ObjectSize(ctx context.Context, bucket, key string) (int64, error) {
	bucket = s.Bucket(bucket)
	info, err := s.client.StatObject(ctx, bucket, key)
	s.metrics.ObserveTransfer(OpSize, 0, err)
	if err != nil {
		return 0, &TransferError{Op: OpSize, Bucket: bucket, Key: key, Err: err}
	}
	return info.Size, nil
}
