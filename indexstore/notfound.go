package indexstore

import (
	"errors"
	"fmt"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const azblobBlobNotFound = "BlobNotFound"

func asStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

// wrapIndexNotFound translates the azure sdk blob-not-found error into
// ErrIndexNotFound so that callers probing for the latest committed index can
// errors.Is for it without knowing the storage error codes. Every other
// error, including nil, is returned as is.
func wrapIndexNotFound(err error) error {
	if err == nil {
		return nil
	}
	serr, ok := asStorageError(err)
	if !ok {
		return err
	}
	if serr.ErrorCode != azblobBlobNotFound {
		return err
	}
	return fmt.Errorf("%s: %w", err.Error(), ErrIndexNotFound)
}

// IsIndexNotFound reports whether err means the requested index or checkpoint
// blob does not exist.
func IsIndexNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIndexNotFound) {
		return true
	}
	serr, ok := asStorageError(err)
	if !ok {
		return false
	}
	return serr.ErrorCode == azblobBlobNotFound
}
