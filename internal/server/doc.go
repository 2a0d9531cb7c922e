// Package server exposes a store over the network. The HTTP surface is built on gin, the RESP surface on redcon.
//
// Both surfaces serve many connections at once while the store is single-threaded. All store access goes through
// Guarded, which serializes every call with a mutex.
package server
