package kv

import intstore "github.com/backbone81/walkv/internal/store"

// Store is a key-value store which persists every mutation in an append-only log file.
//
// Instances of Store are NOT safe to use concurrently. You need to provide external synchronization around all methods.
type Store = intstore.Store

// Open opens the store backed by the log file at the given path, creating the file if it does not exist. An existing
// log is replayed completely. Every frame appended is tagged with the given magic and version.
var Open = intstore.Open
