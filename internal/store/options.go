package store

import (
	"os"

	"github.com/phuslu/log"

	"github.com/backbone81/walkv/internal/keydir"
	"github.com/backbone81/walkv/internal/logfile"
)

type options struct {
	logger         *log.Logger
	syncPolicyType logfile.SyncPolicyType
	indexType      keydir.IndexType
	identityCheck  bool
}

func defaultOptions() options {
	return options{
		logger: &log.Logger{
			Level:  log.InfoLevel,
			Writer: &log.IOWriter{Writer: os.Stderr},
		},
		syncPolicyType: logfile.DefaultSyncPolicy,
		indexType:      keydir.DefaultIndexType,
	}
}

// Option describes the function signature which all store options need to implement.
type Option func(o *options)

// WithLogger overwrites the default logger which writes info messages and above to stderr.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSyncPolicy overwrites the default sync policy of the log file.
func WithSyncPolicy(syncPolicyType logfile.SyncPolicyType) Option {
	return func(o *options) {
		o.syncPolicyType = syncPolicyType
	}
}

// WithIndexType overwrites the default data structure holding the in-memory state.
func WithIndexType(indexType keydir.IndexType) Option {
	return func(o *options) {
		o.indexType = indexType
	}
}

// WithIdentityCheck makes Open fail with ErrIdentityMismatch when the log holds frames which were written with a
// different magic or version. Without it, such frames are replayed like any other frame and only a warning is logged.
func WithIdentityCheck(enabled bool) Option {
	return func(o *options) {
		o.identityCheck = enabled
	}
}
