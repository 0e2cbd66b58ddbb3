package indexstore

import (
	"context"

	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"

	"github.com/forestrie/go-sparseindex/keytrie"
	"github.com/forestrie/go-sparseindex/sparseindex"
)

// StoreReader fetches index regions and opens them for querying.
type StoreReader struct {
	log   logger.Logger
	store indexBlobReader
	codec commoncbor.CBORCodec
}

func NewStoreReader(
	log logger.Logger, store indexBlobReader, codec commoncbor.CBORCodec,
) *StoreReader {
	return &StoreReader{
		log:   log,
		store: store,
		codec: codec,
	}
}

// GetCheckpoint fetches and decodes the checkpoint for the numbered index.
func (r *StoreReader) GetCheckpoint(
	ctx context.Context, tenantIdentity string, number uint64,
) (Checkpoint, error) {

	bc := IndexBlobContext{BlobPath: TenantIndexCheckpointPath(tenantIdentity, number)}
	if err := bc.ReadData(ctx, r.store); err != nil {
		return Checkpoint{}, wrapIndexNotFound(err)
	}
	var cp Checkpoint
	if err := r.codec.UnmarshalInto(bc.Data, &cp); err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}

// GetIndex fetches the numbered index blob and opens it. The returned
// context carries the blob's ETag for any subsequent guarded rewrite.
func (r *StoreReader) GetIndex(
	ctx context.Context, tenantIdentity string, number uint64,
) (*sparseindex.Index, IndexBlobContext, error) {
	return r.getIndex(ctx, tenantIdentity, number, sparseindex.Open)
}

// GetIndexWithCodec is GetIndex for regions encoded with rebuilt Huffman
// distributions; the caller supplies the codec carrying those tables.
func (r *StoreReader) GetIndexWithCodec(
	ctx context.Context, tenantIdentity string, number uint64, codec *keytrie.Codec,
) (*sparseindex.Index, IndexBlobContext, error) {
	return r.getIndex(ctx, tenantIdentity, number,
		func(data []byte) (*sparseindex.Index, error) {
			return sparseindex.OpenWithCodec(data, codec)
		})
}

// GetIndexVerified is GetIndex with the region additionally checked against
// its committed checkpoint digest before it is opened. Readers that cannot
// tolerate a torn or replayed blob use this path; the extra fetch is the
// cost.
func (r *StoreReader) GetIndexVerified(
	ctx context.Context, tenantIdentity string, number uint64,
) (*sparseindex.Index, IndexBlobContext, error) {

	cp, err := r.GetCheckpoint(ctx, tenantIdentity, number)
	if err != nil {
		return nil, IndexBlobContext{}, err
	}
	ix, bc, err := r.GetIndex(ctx, tenantIdentity, number)
	if err != nil {
		return nil, IndexBlobContext{}, err
	}
	if err = cp.VerifyRegion(bc.Data); err != nil {
		return nil, IndexBlobContext{}, err
	}
	return ix, bc, nil
}

func (r *StoreReader) getIndex(
	ctx context.Context, tenantIdentity string, number uint64,
	open func([]byte) (*sparseindex.Index, error),
) (*sparseindex.Index, IndexBlobContext, error) {

	bc := IndexBlobContext{BlobPath: TenantIndexBlobPath(tenantIdentity, number)}
	if err := bc.ReadData(ctx, r.store); err != nil {
		return nil, IndexBlobContext{}, wrapIndexNotFound(err)
	}
	ix, err := sparseOpenLogged(r.log, bc.BlobPath, open, bc.Data)
	if err != nil {
		return nil, IndexBlobContext{}, err
	}
	return ix, bc, nil
}

// sparseOpenLogged wraps region opening so that a corrupt blob is logged
// with its path; the surrounding engine treats this as an unreadable index
// and rebuilds from source where it can.
func sparseOpenLogged(
	log logger.Logger, blobPath string,
	open func([]byte) (*sparseindex.Index, error), data []byte,
) (*sparseindex.Index, error) {

	ix, err := open(data)
	if err != nil {
		log.Infof("indexstore: unreadable index at %s: %v", blobPath, err)
		return nil, err
	}
	return ix, nil
}
