package encoding

import (
	"fmt"
	"math"
)

const (
	// LengthPrefixSize is the size of the total_len field in front of every frame.
	LengthPrefixSize = 4

	// FixedHeaderSize is the size of magic, version, operation, encoding, key_len and value_len.
	FixedHeaderSize = 1 + 1 + 1 + 1 + 4 + 4

	// ChecksumSize is the size of the trailing checksum.
	ChecksumSize = 4

	// MinFrameLength is the smallest total_len a frame can have. This is a frame with empty key and empty value.
	MinFrameLength = FixedHeaderSize + ChecksumSize

	// MaxPayloadLength is the maximum combined length of key and value which still fits into total_len.
	MaxPayloadLength = math.MaxUint32 - MinFrameLength
)

// deleteEncoding is the sentinel written into the encoding byte of delete frames.
const deleteEncoding = EncodingString

// Frame is a single mutation event as stored in the log.
type Frame struct {
	// TotalLength is the byte length of everything following the length prefix, the checksum included.
	TotalLength uint32

	// Magic and Version identify the store which wrote the frame.
	Magic   byte
	Version byte

	Operation Operation

	// Encoding is the encoding of the value. It is meaningless for delete frames and might hold a byte which is no
	// known encoding for frames read from disk.
	Encoding Encoding

	KeyLength   uint32
	ValueLength uint32

	Key   []byte
	Value []byte

	Checksum uint32
}

// NewSetFrame creates a frame which sets the key to the value.
func NewSetFrame(magic byte, version byte, key string, value Value) Frame {
	return newFrame(magic, version, OperationSet, value.Encoding, []byte(key), value.Bytes)
}

// NewDeleteFrame creates a frame which removes the key.
func NewDeleteFrame(magic byte, version byte, key string) Frame {
	return newFrame(magic, version, OperationDelete, deleteEncoding, []byte(key), nil)
}

func newFrame(magic byte, version byte, operation Operation, encoding Encoding, key []byte, value []byte) Frame {
	frame := Frame{
		Magic:       magic,
		Version:     version,
		Operation:   operation,
		Encoding:    encoding,
		KeyLength:   uint32(len(key)),   //nolint:gosec // callers keep payloads below MaxPayloadLength
		ValueLength: uint32(len(value)), //nolint:gosec // callers keep payloads below MaxPayloadLength
		Key:         key,
		Value:       value,
	}
	frame.TotalLength = uint32(FrameLength(frame.KeyLength, frame.ValueLength)) //nolint:gosec // see above
	frame.Checksum = frame.ComputeChecksum()
	return frame
}

// FrameLength returns the total_len of a frame with the given key and value lengths. The result is computed in 64 bit
// to not overflow on corrupted lengths.
func FrameLength(keyLength uint32, valueLength uint32) uint64 {
	return FixedHeaderSize + uint64(keyLength) + uint64(valueLength) + ChecksumSize
}

// EncodedSize returns the number of bytes the frame occupies in the log, the length prefix included.
func (f *Frame) EncodedSize() int {
	return LengthPrefixSize + int(FrameLength(uint32(len(f.Key)), uint32(len(f.Value)))) //nolint:gosec // see newFrame
}

// EncodeFrame serializes the frame into a new byte slice. See AppendFrame.
func EncodeFrame(frame Frame) []byte {
	return AppendFrame(make([]byte, 0, frame.EncodedSize()), frame)
}

// AppendFrame serializes the frame and appends it to dst. Lengths and checksum are always derived from the key and
// value payloads, the corresponding fields of the frame are ignored. Passing a reused dst[:0] avoids allocations.
//
// The combined length of key and value must not exceed MaxPayloadLength.
func AppendFrame(dst []byte, frame Frame) []byte {
	frame.KeyLength = uint32(len(frame.Key))     //nolint:gosec // documented precondition
	frame.ValueLength = uint32(len(frame.Value)) //nolint:gosec // documented precondition
	frame.TotalLength = uint32(FrameLength(frame.KeyLength, frame.ValueLength)) //nolint:gosec // documented precondition

	dst = Endian.AppendUint32(dst, frame.TotalLength)
	dst = appendHeader(dst, &frame)
	dst = append(dst, frame.Key...)
	dst = append(dst, frame.Value...)
	return Endian.AppendUint32(dst, frame.ComputeChecksum())
}

func appendHeader(dst []byte, frame *Frame) []byte {
	dst = append(dst, frame.Magic, frame.Version, byte(frame.Operation), byte(frame.Encoding))
	dst = Endian.AppendUint32(dst, frame.KeyLength)
	return Endian.AppendUint32(dst, frame.ValueLength)
}

// DecodeFrame parses the frame body which followed a length prefix of totalLength.
//
// The returned key and value slices point into body and are only valid as long as body is not modified. The frame is
// structurally validated before the checksum is verified. A frame whose declared lengths do not add up to totalLength
// is rejected before any payload is read. All failures are reported as ErrCorruptLog. The encoding byte is not
// interpreted here.
func DecodeFrame(totalLength uint32, body []byte) (Frame, error) {
	if len(body) < FixedHeaderSize {
		return Frame{}, fmt.Errorf("%w: frame header needs %d bytes but only %d are available", ErrCorruptLog, FixedHeaderSize, len(body))
	}

	frame := Frame{
		TotalLength: totalLength,
		Magic:       body[0],
		Version:     body[1],
		Operation:   Operation(body[2]),
		Encoding:    Encoding(body[3]),
		KeyLength:   Endian.Uint32(body[4:8]),
		ValueLength: Endian.Uint32(body[8:12]),
	}

	expectedLength := FrameLength(frame.KeyLength, frame.ValueLength)
	if expectedLength != uint64(totalLength) {
		return Frame{}, fmt.Errorf("%w: frame declares %d bytes but key and value lengths require %d", ErrCorruptLog, totalLength, expectedLength)
	}
	if uint64(len(body)) < expectedLength {
		return Frame{}, fmt.Errorf("%w: frame needs %d bytes but only %d are available", ErrCorruptLog, expectedLength, len(body))
	}

	keyEnd := FixedHeaderSize + uint64(frame.KeyLength)
	valueEnd := keyEnd + uint64(frame.ValueLength)
	frame.Key = body[FixedHeaderSize:keyEnd]
	frame.Value = body[keyEnd:valueEnd]
	frame.Checksum = Endian.Uint32(body[valueEnd : valueEnd+ChecksumSize])

	if computed := frame.ComputeChecksum(); computed != frame.Checksum {
		return Frame{}, fmt.Errorf("%w: frame checksum is 0x%08x but the content has 0x%08x", ErrCorruptLog, frame.Checksum, computed)
	}
	return frame, nil
}
