package mocks

import (
	"context"
	"io"

	"object-resolver/core/storage"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) ListPage(ctx context.Context, bucket string, opts storage.ListOptions) (*storage.Page, error) {
	args := m.Called(ctx, bucket, opts)
	if page, ok := args.Get(0).(*storage.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key)
	if obj, ok := args.Get(0).(io.ReadCloser); ok {
		return obj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64) error {
	args := m.Called(ctx, bucket, key, r, size)
	return args.Error(0)
}

func (m *Client) StatObject(ctx context.Context, bucket, key string) (storage.ObjectInfo, error) {
	args := m.Called(ctx, bucket, key)
	return args.Get(0).(storage.ObjectInfo), args.Error(1)
}
