// Package kv provides a durable key-value store backed by an append-only write-ahead log.
//
//   - Every Set and Delete appends exactly one frame to the log file before the in-memory state changes. When the
//     append fails, the in-memory state is left untouched.
//   - Opening a store replays the whole log from the start. Later frames for the same key override earlier ones.
//   - Frames are never rewritten and the log is never compacted. Opening takes time proportional to the size of the log.
//   - Values carry an encoding which is one of string, integer or float.
//   - A Store is not safe for concurrent use and nothing prevents two processes from opening the same log file.
package kv
