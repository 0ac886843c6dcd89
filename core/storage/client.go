package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// ListOptions configures a single delimiter listing request.
type ListOptions struct {
	// Prefix restricts results to keys starting with this value.
	Prefix string
	// Delimiter groups keys below the prefix into common prefixes (usually "/").
	Delimiter string
	// ContinuationToken resumes a listing from a previous Page.
	ContinuationToken string
}

// Page is one response of a delimiter listing.
type Page struct {
	// Keys are the objects directly under the prefix, in service order.
	Keys []string
	// CommonPrefixes are the immediate child prefixes, each ending with the delimiter.
	CommonPrefixes []string
	// NextToken continues the listing. Empty means the listing is complete.
	NextToken string
}

// ObjectInfo is the metadata returned by StatObject.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Lister is the paginated listing API consumed by the pattern resolver.
type Lister interface {
	// ListPage returns one page of keys and common prefixes.
	ListPage(ctx context.Context, bucket string, opts ListOptions) (*Page, error)
}

// Client defines the interface for storage operations.
type Client interface {
	Lister
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucket string) (bool, error)
	// GetObject opens the object body for reading. Callers must close it.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, error)
	// PutObject uploads size bytes read from r.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64) error
	// StatObject returns object metadata without fetching the body.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
}

// NewClient creates the storage client selected by cfg.Driver.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Driver {
	case DriverMinio, "":
		return newMinioClient(cfg)
	case DriverS3:
		return newS3Client(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// newTransport builds an HTTP transport with strict connection timeouts.
func newTransport(cfg Config) *http.Transport {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   requestTimeout(cfg),
			KeepAlive: 30 * time.Second,
		}).DialContext,
	}
	applyTransportTimeouts(tr, cfg)
	return tr
}

// applyTransportTimeouts sets the pool and timeout settings shared by every backend.
func applyTransportTimeouts(tr *http.Transport, cfg Config) {
	timeout := requestTimeout(cfg)
	tr.ForceAttemptHTTP2 = true
	tr.MaxIdleConns = 100
	tr.IdleConnTimeout = 90 * time.Second
	tr.TLSHandshakeTimeout = timeout
	tr.ExpectContinueTimeout = 1 * time.Second
	tr.ResponseHeaderTimeout = timeout
}

// requestTimeout returns the configured timeout, 30s when unset.
func requestTimeout(cfg Config) time.Duration {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return time.Duration(timeout) * time.Second
}
