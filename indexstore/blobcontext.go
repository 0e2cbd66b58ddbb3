package indexstore

import (
	"context"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
)

// IndexBlobContext carries one index blob together with the store metadata
// needed to update it safely. The ETag read here must accompany any
// subsequent write of the same path.
type IndexBlobContext struct {
	BlobPath      string
	ETag          string
	Tags          map[string]string
	LastRead      time.Time
	LastModified  time.Time
	Data          []byte
	ContentLength int64
}

// ReadData reads the blob at BlobPath and populates the context metadata
// from the store response. On return Data holds the full blob contents.
func (bc *IndexBlobContext) ReadData(
	ctx context.Context, store indexBlobReader, opts ...azblob.Option,
) error {

	rr, data, err := blobRead(ctx, bc.BlobPath, store, opts...)
	if err != nil {
		return err
	}
	bc.Data = data
	bc.Tags = rr.Tags
	if rr.ETag != nil {
		bc.ETag = *rr.ETag
	}
	if rr.LastModified != nil {
		bc.LastModified = *rr.LastModified
	}
	bc.ContentLength = rr.ContentLength
	bc.LastRead = time.Now()
	return nil
}
