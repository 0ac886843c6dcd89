package transfer

import (
	"errors"
	"fmt"
)

// ErrTransferFailure is matched by every error returned from this package.
var ErrTransferFailure = errors.New("transfer failed")

// TransferError describes a failed download, upload or size lookup.
type TransferError struct {
	Op     string
	Bucket string
	Key    string
	Path   string
	Err    error
}

func (e *TransferError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s/%s (%s): %v", e.Op, e.Bucket, e.Key, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
}

func (e *TransferError) Is(target error) bool {
	return target == ErrTransferFailure
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
