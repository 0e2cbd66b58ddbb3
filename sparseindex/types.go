package sparseindex

import "errors"

var (
	ErrNoKeys         = errors.New("sparseindex: at least one key is required")
	ErrKeyLenMismatch = errors.New("sparseindex: keys must share one fixed length")
	ErrKeyTooLong     = errors.New("sparseindex: key length does not fit the header field")
	ErrOutOfOrderKey  = errors.New("sparseindex: keys out of order")
	ErrDuplicateKey   = errors.New("sparseindex: duplicate key")
	ErrConfigMismatch = errors.New("sparseindex: codec configuration does not match the header")

	ErrBadRegionSize = errors.New("sparseindex: region too small for its header")
	ErrBadMagic      = errors.New("sparseindex: header magic invalid")
	ErrBadVersion    = errors.New("sparseindex: header version invalid")
	ErrBadHeader     = errors.New("sparseindex: header fields invalid")
	ErrTruncated     = errors.New("sparseindex: region shorter than the header declares")
	ErrChecksum      = errors.New("sparseindex: payload checksum mismatch")

	ErrBadFilterParams = errors.New("sparseindex: filter parameters invalid")
	ErrBadKeyQuery     = errors.New("sparseindex: query key has the wrong length")
)
