package indexstore

import "errors"

var (
	ErrETagRequired     = errors.New("indexstore: an etag is required when updating an existing blob")
	ErrIndexNotFound    = errors.New("indexstore: no index blob at the requested path")
	ErrCheckpointDigest = errors.New("indexstore: the region digest does not match its checkpoint")
)
