package indexstore

import (
	"github.com/cespare/xxhash/v2"
	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"

	"github.com/forestrie/go-sparseindex/sparseindex"
)

// Checkpoint is the CBOR manifest committed alongside each index blob. It
// echoes the region header's configuration so that replicas can verify a
// fetched region, and decide how to open it, without parsing the region
// first. RegionDigest covers the entire blob including its header, which the
// region's own internal checksum does not.
type Checkpoint struct {
	TenantIdentity string `cbor:"1,keyasint"`
	Number         uint64 `cbor:"2,keyasint"`
	IndexID        string `cbor:"3,keyasint"`
	BlobPath       string `cbor:"4,keyasint"`
	KeyCount       uint64 `cbor:"5,keyasint"`
	KeyLen         uint8  `cbor:"6,keyasint"`
	KeysPerBlock   uint64 `cbor:"7,keyasint"`
	WeakOrdering   bool   `cbor:"8,keyasint"`
	HuffmanLimit   uint8  `cbor:"9,keyasint"`
	RegionDigest   uint64 `cbor:"10,keyasint"`
	CommittedMS    int64  `cbor:"11,keyasint"`
}

// NewCBORCodec returns the codec used for checkpoint blobs. Encoding is
// canonical so a checkpoint re-encodes byte-identically everywhere.
func NewCBORCodec() (commoncbor.CBORCodec, error) {
	return commoncbor.NewCBORCodec(cbor.CanonicalEncOptions(), cbor.DecOptions{})
}

// NewCheckpoint derives the manifest for a region destined for blobPath. The
// region must already have been built (its header is decoded here, so a
// corrupt region is refused rather than checkpointed).
func NewCheckpoint(
	tenantIdentity string, number uint64, indexID string, blobPath string,
	region []byte, committedMS int64,
) (Checkpoint, error) {

	hdr, err := sparseindex.DecodeHeaderV1(region)
	if err != nil {
		return Checkpoint{}, err
	}
	return Checkpoint{
		TenantIdentity: tenantIdentity,
		Number:         number,
		IndexID:        indexID,
		BlobPath:       blobPath,
		KeyCount:       hdr.Count,
		KeyLen:         hdr.KeyLen,
		KeysPerBlock:   hdr.KeysPerBlock,
		WeakOrdering:   hdr.Flags&sparseindex.FlagWeakOrdering != 0,
		HuffmanLimit:   hdr.HuffmanLimit,
		RegionDigest:   xxhash.Sum64(region),
		CommittedMS:    committedMS,
	}, nil
}

// VerifyRegion checks a fetched region against the checkpoint's digest.
func (cp Checkpoint) VerifyRegion(region []byte) error {
	if xxhash.Sum64(region) != cp.RegionDigest {
		return ErrCheckpointDigest
	}
	return nil
}
