package encoding

import "errors"

var (
	// ErrCorruptLog is returned for any structural or checksum mismatch of a frame.
	ErrCorruptLog = errors.New("log file is corrupted")

	// ErrEncoding is returned for a value encoding tag which is not known. It is never returned for structural issues.
	ErrEncoding = errors.New("invalid value encoding")
)
