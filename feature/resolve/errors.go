package resolve

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPattern is matched by errors for patterns without exactly one marker.
	ErrMalformedPattern = errors.New("malformed pattern")
	// ErrListingFailure is matched by errors from the listing service.
	ErrListingFailure = errors.New("listing failure")
	// ErrMissingBucket is returned when no bucket is given.
	ErrMissingBucket = errors.New("bucket is required")
)

// PatternError reports a pattern that cannot be decomposed.
type PatternError struct {
	Pattern string
	Reason  string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("malformed pattern %q: %s", e.Pattern, e.Reason)
}

func (e *PatternError) Is(target error) bool {
	return target == ErrMalformedPattern
}

// ListingError reports a failed listing call. Page is 1-based.
type ListingError struct {
	Bucket string
	Prefix string
	Page   int
	Err    error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("listing %s/%s (page %d): %v", e.Bucket, e.Prefix, e.Page, e.Err)
}

func (e *ListingError) Is(target error) bool {
	return target == ErrListingFailure
}

func (e *ListingError) Unwrap() error {
	return e.Err
}
