// Package indexstore persists sparse index regions as numbered blobs in
// object storage, one blob per indexed table generation, under a per-tenant
// prefix.
//
// The store is the integration boundary of this repo: the codec and region
// format know nothing about storage, and this package knows nothing about
// trie internals. It deals in whole regions, ETag-guarded writes (creates
// must not clobber a racing create, updates must not clobber a concurrent
// update), and a small CBOR checkpoint blob recording what was committed so
// that replicas and auditors can verify a fetched region without opening it.
package indexstore
