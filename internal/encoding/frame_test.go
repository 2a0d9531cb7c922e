package encoding_test

import (
	"fmt"
	"hash/crc32"
	"math"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/walkv/internal/encoding"
)

// splitFrame separates the length prefix from the frame body like the log reader does.
func splitFrame(encoded []byte) (uint32, []byte) {
	return encoding.Endian.Uint32(encoded[:encoding.LengthPrefixSize]), encoded[encoding.LengthPrefixSize:]
}

var _ = Describe("Frame", func() {
	DescribeTable("Round-tripping frames",
		func(frame encoding.Frame) {
			encoded := encoding.EncodeFrame(frame)
			Expect(encoded).To(HaveLen(frame.EncodedSize()))

			totalLength, body := splitFrame(encoded)
			Expect(totalLength).To(Equal(frame.TotalLength))

			decoded, err := encoding.DecodeFrame(totalLength, body)
			Expect(err).ToNot(HaveOccurred())
			Expect(decoded.TotalLength).To(Equal(frame.TotalLength))
			Expect(decoded.Magic).To(Equal(frame.Magic))
			Expect(decoded.Version).To(Equal(frame.Version))
			Expect(decoded.Operation).To(Equal(frame.Operation))
			Expect(decoded.Encoding).To(Equal(frame.Encoding))
			Expect(decoded.KeyLength).To(Equal(frame.KeyLength))
			Expect(decoded.ValueLength).To(Equal(frame.ValueLength))
			Expect(decoded.Key).To(BeEquivalentTo(frame.Key))
			Expect(decoded.Value).To(HaveLen(len(frame.Value)))
			if len(frame.Value) > 0 {
				Expect(decoded.Value).To(Equal(frame.Value))
			}
			Expect(decoded.Checksum).To(Equal(frame.Checksum))
			Expect(decoded.Checksum).To(Equal(decoded.ComputeChecksum()))
		},
		Entry("When setting a string", encoding.NewSetFrame(0xAA, 0x01, "greeting", encoding.StringValue("Hello, KVstore!"))),
		Entry("When setting an integer", encoding.NewSetFrame(0xAA, 0x01, "answer", encoding.IntegerValue(42))),
		Entry("When setting a float", encoding.NewSetFrame(0xAA, 0x01, "pi", encoding.FloatValue(math.Pi))),
		Entry("When setting an empty value", encoding.NewSetFrame(0x01, 0x02, "empty", encoding.StringValue(""))),
		Entry("When setting an empty key", encoding.NewSetFrame(0x01, 0x02, "", encoding.StringValue("value"))),
		Entry("When setting a large value", encoding.NewSetFrame(0xFF, 0xFF, "large", encoding.StringValue(strings.Repeat("x", 64*1024)))),
		Entry("When deleting a key", encoding.NewDeleteFrame(0xAA, 0x01, "greeting")),
		Entry("When deleting an empty key", encoding.NewDeleteFrame(0x00, 0x00, "")),
	)

	It("should lay out the fields in the documented order", func() {
		frame := encoding.NewSetFrame(0xAA, 0x01, "ab", encoding.Value{Encoding: encoding.EncodingFloat, Bytes: []byte{7, 8, 9}})
		encoded := encoding.EncodeFrame(frame)

		Expect(encoded).To(HaveLen(4 + 12 + 2 + 3 + 4))
		Expect(encoded[0:4]).To(Equal([]byte{21, 0, 0, 0}))
		Expect(encoded[4:8]).To(Equal([]byte{0xAA, 0x01, 0x01, 0x02}))
		Expect(encoded[8:12]).To(Equal([]byte{2, 0, 0, 0}))
		Expect(encoded[12:16]).To(Equal([]byte{3, 0, 0, 0}))
		Expect(encoded[16:18]).To(Equal([]byte("ab")))
		Expect(encoded[18:21]).To(Equal([]byte{7, 8, 9}))
		Expect(encoding.Endian.Uint32(encoded[21:25])).To(Equal(crc32.ChecksumIEEE(encoded[4:21])))
	})

	It("should write delete frames with sentinel encoding and no value", func() {
		encoded := encoding.EncodeFrame(encoding.NewDeleteFrame(0xAA, 0x01, "key"))
		Expect(encoded).To(HaveLen(4 + 12 + 3 + 4))
		Expect(encoded[6]).To(Equal(byte(encoding.OperationDelete)))
		Expect(encoded[7]).To(Equal(byte(0x00)))
		Expect(encoded[12:16]).To(Equal([]byte{0, 0, 0, 0}))
	})

	It("should derive lengths from the payloads when appending", func() {
		frame := encoding.Frame{
			Magic:       0xAA,
			Version:     0x01,
			Operation:   encoding.OperationSet,
			Encoding:    encoding.EncodingString,
			KeyLength:   999,
			ValueLength: 999,
			Key:         []byte("key"),
			Value:       []byte("value"),
		}
		totalLength, body := splitFrame(encoding.AppendFrame(nil, frame))
		decoded, err := encoding.DecodeFrame(totalLength, body)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.KeyLength).To(Equal(uint32(3)))
		Expect(decoded.ValueLength).To(Equal(uint32(5)))
	})

	It("should append to an existing buffer", func() {
		first := encoding.NewSetFrame(0xAA, 0x01, "a", encoding.StringValue("1"))
		second := encoding.NewDeleteFrame(0xAA, 0x01, "a")
		buffer := encoding.AppendFrame(nil, first)
		buffer = encoding.AppendFrame(buffer, second)
		Expect(buffer).To(HaveLen(first.EncodedSize() + second.EncodedSize()))
		Expect(buffer[first.EncodedSize():]).To(Equal(encoding.EncodeFrame(second)))
	})

	It("should fail on every single bit flip after the length prefix", func() {
		encoded := encoding.EncodeFrame(encoding.NewSetFrame(0xAA, 0x01, "key", encoding.IntegerValue(-1)))
		for i := encoding.LengthPrefixSize; i < len(encoded); i++ {
			for bit := range 8 {
				corrupted := make([]byte, len(encoded))
				copy(corrupted, encoded)
				corrupted[i] ^= 1 << bit

				totalLength, body := splitFrame(corrupted)
				_, err := encoding.DecodeFrame(totalLength, body)
				Expect(err).To(MatchError(encoding.ErrCorruptLog), fmt.Sprintf("byte %d bit %d", i, bit))
			}
		}
	})

	It("should fail when the declared total length does not match the field lengths", func() {
		totalLength, body := splitFrame(encoding.EncodeFrame(encoding.NewSetFrame(0xAA, 0x01, "key", encoding.StringValue("value"))))
		_, err := encoding.DecodeFrame(totalLength+1, body)
		Expect(err).To(MatchError(encoding.ErrCorruptLog))
		_, err = encoding.DecodeFrame(totalLength-1, body)
		Expect(err).To(MatchError(encoding.ErrCorruptLog))
	})

	It("should fail when the body is shorter than declared", func() {
		totalLength, body := splitFrame(encoding.EncodeFrame(encoding.NewSetFrame(0xAA, 0x01, "key", encoding.StringValue("value"))))
		for i := range len(body) {
			_, err := encoding.DecodeFrame(totalLength, body[:i])
			Expect(err).To(MatchError(encoding.ErrCorruptLog))
		}
	})

	It("should not read out of bounds for huge declared lengths", func() {
		body := make([]byte, encoding.FixedHeaderSize)
		encoding.Endian.PutUint32(body[4:8], math.MaxUint32)
		encoding.Endian.PutUint32(body[8:12], math.MaxUint32)
		Expect(func() {
			_, err := encoding.DecodeFrame(math.MaxUint32, body)
			Expect(err).To(MatchError(encoding.ErrCorruptLog))
		}).ToNot(Panic())

		// Lengths which wrap around to the declared total length in 32 bit must still be rejected.
		encoding.Endian.PutUint32(body[4:8], math.MaxUint32)
		encoding.Endian.PutUint32(body[8:12], 1)
		Expect(func() {
			_, err := encoding.DecodeFrame(encoding.MinFrameLength, body)
			Expect(err).To(MatchError(encoding.ErrCorruptLog))
		}).ToNot(Panic())
	})

	It("should not interpret the encoding byte", func() {
		frame := encoding.NewSetFrame(0xAA, 0x01, "key", encoding.Value{Encoding: encoding.Encoding(0x7F), Bytes: []byte("x")})
		totalLength, body := splitFrame(encoding.EncodeFrame(frame))
		decoded, err := encoding.DecodeFrame(totalLength, body)
		Expect(err).ToNot(HaveOccurred())
		Expect(decoded.Encoding).To(Equal(encoding.Encoding(0x7F)))
	})
})

func BenchmarkAppendFrame(b *testing.B) {
	for _, size := range []int{0, 1, 2, 4, 8, 16} {
		frame := encoding.NewSetFrame(0xAA, 0x01, "benchmark", encoding.Value{Bytes: make([]byte, size*1024)})
		buffer := make([]byte, 0, frame.EncodedSize())
		b.Run(fmt.Sprintf("%d KB value", size), func(b *testing.B) {
			for b.Loop() {
				buffer = encoding.AppendFrame(buffer[:0], frame)
			}
		})
	}
}

func BenchmarkDecodeFrame(b *testing.B) {
	for _, size := range []int{0, 1, 2, 4, 8, 16} {
		totalLength, body := splitFrame(encoding.EncodeFrame(encoding.NewSetFrame(0xAA, 0x01, "benchmark", encoding.Value{Bytes: make([]byte, size*1024)})))
		b.Run(fmt.Sprintf("%d KB value", size), func(b *testing.B) {
			for b.Loop() {
				if _, err := encoding.DecodeFrame(totalLength, body); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
