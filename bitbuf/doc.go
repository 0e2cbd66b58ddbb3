// Package bitbuf provides the bit-level primitives shared by the sparse
// index codecs: MSB-first bit extraction from fixed-length byte keys, an
// append-only bit writer, and a bounded bit reader with an explicit cursor.
//
// A single bit order is used everywhere: bit 0 of a stream or key is the most
// significant bit of byte 0. Key inspection and code packing must agree on
// this order for the variable-length codes built on top to be symmetric.
//
// In keeping with the functional primitives style of this repo, hot-path
// accessors do no bounds checking beyond what their callers guarantee; the
// Reader is the exception, because a reader position is driven by decoded
// (potentially corrupt) data and must fail rather than read out of range.
package bitbuf
