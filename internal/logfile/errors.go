package logfile

import "errors"

var (
	// ErrIO is returned for any failure of reading from or writing to the log file.
	ErrIO = errors.New("log file IO failed")

	// ErrSyncPolicyUnsupported is returned for unknown sync policy types.
	ErrSyncPolicyUnsupported = errors.New("unsupported log sync policy")

	// errEndOfLog signals the clean end of the log to Reader.Next. It never leaves this package.
	errEndOfLog = errors.New("end of log")
)
