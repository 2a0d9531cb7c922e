// Package keydir holds the in-memory state of the store: the mapping from key to the value it was last set to.
//
// The state is rebuilt from the log on every open. Three implementations of Index are available. The map is the
// default, the btree and the adaptive radix tree keep their keys ordered and trade some speed for cheaper sorted key
// listings.
package keydir
