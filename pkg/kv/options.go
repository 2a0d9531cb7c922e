package kv

import (
	intkeydir "github.com/backbone81/walkv/internal/keydir"
	intlogfile "github.com/backbone81/walkv/internal/logfile"
	intstore "github.com/backbone81/walkv/internal/store"
)

// Option configures Open.
type Option = intstore.Option

// WithLogger overwrites the default logger which writes info messages and above to stderr.
var WithLogger = intstore.WithLogger

// WithSyncPolicy overwrites the default sync policy of the log file.
var WithSyncPolicy = intstore.WithSyncPolicy

// WithIndexType overwrites the default data structure holding the in-memory state.
var WithIndexType = intstore.WithIndexType

// WithIdentityCheck makes Open fail when the log holds frames written with a different magic or version.
var WithIdentityCheck = intstore.WithIdentityCheck

// SyncPolicyType describes when appended frames are flushed to disk.
type SyncPolicyType = intlogfile.SyncPolicyType

const (
	SyncPolicyTypeNone      = intlogfile.SyncPolicyTypeNone
	SyncPolicyTypeImmediate = intlogfile.SyncPolicyTypeImmediate
)

// IndexType describes the data structure holding the in-memory state.
type IndexType = intkeydir.IndexType

const (
	IndexTypeMap   = intkeydir.IndexTypeMap
	IndexTypeBTree = intkeydir.IndexTypeBTree
	IndexTypeART   = intkeydir.IndexTypeART
)
