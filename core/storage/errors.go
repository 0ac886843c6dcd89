package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by errors for objects or buckets that do not exist.
var ErrNotFound = errors.New("object not found")

// Error is a backend failure annotated with the operation and object it concerns.
type Error struct {
	// Op is the operation that failed (e.g. "list", "get", "put", "stat").
	Op string
	// Bucket is the bucket name, if applicable.
	Bucket string
	// Key is the object key or listing prefix, if applicable.
	Key string
	// Err is the underlying SDK error.
	Err error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	return fmt.Sprintf("storage.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, bucket, key string, err error) *Error {
	return &Error{Op: op, Bucket: bucket, Key: key, Err: err}
}

// notFound keeps the SDK error in the chain while also matching ErrNotFound.
type notFound struct {
	err error
}

func (n notFound) Error() string {
	return n.err.Error()
}

func (n notFound) Unwrap() []error {
	return []error{ErrNotFound, n.err}
}
