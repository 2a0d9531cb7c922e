// Package encoding provides the binary frame codec of the key-value log.
//
// Every mutation of the store is written as one frame. A frame is prefixed with its length and protected by a CRC-32
// checksum:
//
//	| total_len (4) | magic (1) | version (1) | operation (1) | encoding (1) | key_len (4) | value_len (4) |
//	| key_bytes (key_len) | value_bytes (value_len) | checksum (4) |
//
// All multi-byte integers are little-endian. total_len counts every byte following it, the checksum included. The
// checksum covers magic through value_bytes.
package encoding

import "encoding/binary"

// Endian is the endianness the log uses for serializing/deserializing integers to file.
var Endian = binary.LittleEndian
