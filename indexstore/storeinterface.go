package indexstore

import (
	"context"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
)

// indexBlobReader is the read surface this package needs from a blob store.
// The azblob wrapper satisfies it directly; tests satisfy it with an
// in-memory fake.
type indexBlobReader interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)
}

// indexBlobWriter is the write surface.
type indexBlobWriter interface {
	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
}

type indexBlobStore interface {
	indexBlobReader
	indexBlobWriter
}

// blobRead fetches the blob at identity and drains its body. The response is
// returned for its metadata (ETag, LastModified, Tags); its reader is fully
// consumed on return.
func blobRead(
	ctx context.Context, identity string, store indexBlobReader, opts ...azblob.Option,
) (*azblob.ReaderResponse, []byte, error) {

	rr, err := store.Reader(ctx, identity, opts...)
	if err != nil {
		return nil, nil, err
	}
	data, err := io.ReadAll(rr.Reader)
	if err != nil {
		return nil, nil, err
	}
	return rr, data, nil
}
