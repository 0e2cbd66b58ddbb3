package indexstore

import (
	"context"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	commoncbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/google/uuid"
)

type CommitterConfig struct {
	TenantIdentity string
}

// Committer writes index regions and their checkpoints with the ETag
// guards that make concurrent writers safe: a create fails if any blob
// already exists at the path, an update fails unless the blob is unchanged
// since it was read.
type Committer struct {
	Cfg   CommitterConfig
	Log   logger.Logger
	Store indexBlobStore
	Codec commoncbor.CBORCodec
}

func NewCommitter(
	cfg CommitterConfig, log logger.Logger, store indexBlobStore, codec commoncbor.CBORCodec,
) *Committer {
	return &Committer{
		Cfg:   cfg,
		Log:   log,
		Store: store,
		Codec: codec,
	}
}

// CommitIndex writes region as the numbered index blob for the configured
// tenant. creating selects the guard: a fresh blob must not already exist,
// while an update must present the ETag from the read it is based on. The
// checkpoint blob is written after the region commits, so a checkpoint never
// references a region that failed to land.
func (c *Committer) CommitIndex(
	ctx context.Context, number uint64, region []byte, creating bool, etag string,
) (Checkpoint, error) {

	blobPath := TenantIndexBlobPath(c.Cfg.TenantIdentity, number)

	var opts []azblob.Option
	if creating {
		// 'fail unless no blob matches any etag' is how a guarded create is
		// spelled against blob stores.
		opts = append(opts, azblob.WithEtagNoneMatch("*"))
	} else {
		if etag == "" {
			return Checkpoint{}, ErrETagRequired
		}
		opts = append(opts, azblob.WithEtagMatch(etag))
	}

	cp, err := NewCheckpoint(
		c.Cfg.TenantIdentity, number, uuid.New().String(), blobPath,
		region, time.Now().UnixMilli(),
	)
	if err != nil {
		return Checkpoint{}, err
	}

	_, err = c.Store.Put(ctx, blobPath, azblob.NewBytesReaderCloser(region), opts...)
	if err != nil {
		return Checkpoint{}, err
	}
	c.Log.Infof("CommitIndex: committed %s (%d keys)", blobPath, cp.KeyCount)

	encoded, err := c.Codec.MarshalCBOR(cp)
	if err != nil {
		return Checkpoint{}, err
	}
	checkpointPath := TenantIndexCheckpointPath(c.Cfg.TenantIdentity, number)
	// The checkpoint is always overwritten; it is derived state and its
	// authority is the region blob it digests.
	_, err = c.Store.Put(ctx, checkpointPath, azblob.NewBytesReaderCloser(encoded))
	if err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}
