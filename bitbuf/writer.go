package bitbuf

// Writer is an append-only bit sink over a growable byte buffer.
//
// Bits are packed MSB-first within each byte, matching KeyBit. The final
// partial byte, if any, is zero padded on the low side; Len reports the exact
// bit count so readers never interpret the padding.
type Writer struct {
	buf   []byte
	nbits uint64
}

// NewWriter returns a Writer appending to an empty buffer.
func NewWriter() *Writer {
	return &Writer{}
}

// AppendBit appends a single bit. Any non-zero b is treated as 1.
func (w *Writer) AppendBit(b uint8) {
	if w.nbits&7 == 0 {
		w.buf = append(w.buf, 0)
	}
	if b != 0 {
		w.buf[w.nbits>>3] |= 1 << (7 - (w.nbits & 7))
	}
	w.nbits++
}

// AppendBits appends the low nbits bits of v, most significant first.
//
// The caller must guarantee nbits <= 64.
func (w *Writer) AppendBits(v uint64, nbits uint) {
	for i := nbits; i > 0; i-- {
		w.AppendBit(uint8((v >> (i - 1)) & 1))
	}
}

// Len returns the number of bits appended so far.
func (w *Writer) Len() uint64 {
	return w.nbits
}

// Bytes returns the backing buffer. The final byte may contain up to 7
// padding bits; Len()%8 determines how many trailing bits are unused.
//
// The slice aliases the writer's storage and is invalidated by further
// appends.
func (w *Writer) Bytes() []byte {
	return w.buf
}
