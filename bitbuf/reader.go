package bitbuf

import "errors"

var ErrShortBuffer = errors.New("bitbuf: read past end of buffer")

// Reader reads bits from a byte sequence through a mutable bit cursor.
//
// The data is owned by the caller; the Reader retains the slice only for the
// duration of its use and never writes to it. The cursor is exposed so that
// callers interleaving multiple decoders over one stream can checkpoint and
// restore their position.
type Reader struct {
	data []byte
	pos  uint64
	end  uint64
}

// NewReader returns a Reader over data starting at bit position pos.
func NewReader(data []byte, pos uint64) *Reader {
	return &Reader{data: data, pos: pos, end: uint64(len(data)) * 8}
}

// NewReaderBits is NewReader with an explicit bit length, for buffers whose
// final byte is partially occupied.
func NewReaderBits(data []byte, pos uint64, nbits uint64) *Reader {
	end := uint64(len(data)) * 8
	if nbits < end {
		end = nbits
	}
	return &Reader{data: data, pos: pos, end: end}
}

// ReadBit returns the bit at the cursor and advances it.
//
// ErrShortBuffer is returned once the cursor reaches the end of the data; a
// decoder driven off the rails by a corrupt stream ends up here rather than
// indexing out of range.
func (r *Reader) ReadBit() (uint8, error) {
	if r.pos >= r.end {
		return 0, ErrShortBuffer
	}
	b := (r.data[r.pos>>3] >> (7 - (r.pos & 7))) & 1
	r.pos++
	return b, nil
}

// Pos returns the current bit position.
func (r *Reader) Pos() uint64 {
	return r.pos
}

// SetPos moves the cursor. Positions beyond the end are permitted; the next
// ReadBit will return ErrShortBuffer.
func (r *Reader) SetPos(pos uint64) {
	r.pos = pos
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() uint64 {
	if r.pos >= r.end {
		return 0
	}
	return r.end - r.pos
}
