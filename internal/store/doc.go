// Package store provides the durable key-value store.
//
// Every mutation is appended to the log as one frame before the in-memory state is changed. Opening a store replays the
// whole log from the start to rebuild the in-memory state. There is no compaction, every frame ever appended is read
// again on every open.
//
// A Store is NOT safe for concurrent use, and nothing prevents two processes from opening the same log file. Callers
// need to provide both kinds of exclusion themselves.
package store
