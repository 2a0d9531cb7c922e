package encoding

import "hash/crc32"

var crc32ChecksumTable = crc32.MakeTable(crc32.IEEE)

// ComputeChecksum calculates the CRC-32 (IEEE) over magic, version, operation, encoding, key_len, value_len, key and
// value of the frame. The stored Checksum and TotalLength fields do not take part in it.
func (f *Frame) ComputeChecksum() uint32 {
	var buffer [FixedHeaderSize]byte
	header := appendHeader(buffer[:0], f)

	checksum := crc32.Update(0, crc32ChecksumTable, header)
	checksum = crc32.Update(checksum, crc32ChecksumTable, f.Key)
	return crc32.Update(checksum, crc32ChecksumTable, f.Value)
}
