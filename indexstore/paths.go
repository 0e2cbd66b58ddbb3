package indexstore

import "fmt"

const (
	V1IndexPrefix = "v1/sparseindexes"

	V1IndexBlobNameFmt       = "%016d.sidx"
	V1IndexCheckpointNameFmt = "%016d.checkpoint"
)

// TenantIndexPrefix returns the storage prefix holding all index blobs for
// the tenant. It is the caller's responsibility to ensure the tenant identity
// has the correct 'tenant/uuid' form.
func TenantIndexPrefix(tenantIdentity string) string {
	return fmt.Sprintf("%s/%s/indexes/", V1IndexPrefix, tenantIdentity)
}

// TenantIndexBlobPath returns the blob path for the numbered index blob.
func TenantIndexBlobPath(tenantIdentity string, number uint64) string {
	return TenantIndexPrefix(tenantIdentity) + fmt.Sprintf(V1IndexBlobNameFmt, number)
}

// TenantIndexCheckpointPath returns the blob path for the checkpoint
// accompanying the numbered index blob.
func TenantIndexCheckpointPath(tenantIdentity string, number uint64) string {
	return TenantIndexPrefix(tenantIdentity) + fmt.Sprintf(V1IndexCheckpointNameFmt, number)
}
