package store

import (
	"errors"

	"github.com/backbone81/walkv/internal/encoding"
	"github.com/backbone81/walkv/internal/logfile"
)

var (
	// ErrStartup is returned by Open when the store could not be set up. It wraps the error which caused it.
	ErrStartup = errors.New("store startup failed")

	// ErrIO is returned for any failure of reading from or writing to the log file.
	ErrIO = logfile.ErrIO

	// ErrCorruptLog is returned when the log does not hold valid frames.
	ErrCorruptLog = encoding.ErrCorruptLog

	// ErrEncoding is returned for values with an unknown encoding.
	ErrEncoding = encoding.ErrEncoding

	// ErrNotFound is returned when a key is not present.
	ErrNotFound = errors.New("key not found")

	// ErrClosed is returned when the store is used after it was closed.
	ErrClosed = errors.New("store is closed")

	// ErrInvalidKey is returned for keys which are not valid UTF-8. Replay refuses such keys, so they are never
	// appended.
	ErrInvalidKey = errors.New("key is not valid UTF-8")

	// ErrFrameTooLarge is returned when key and value together are too large to fit into a single frame.
	ErrFrameTooLarge = errors.New("key and value are too large")

	// ErrIdentityMismatch is returned by Open with the identity check enabled when the log holds frames with a magic
	// or version different from the requested one.
	ErrIdentityMismatch = errors.New("log was written with a different magic or version")
)
