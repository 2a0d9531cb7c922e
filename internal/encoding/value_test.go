package encoding_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/walkv/internal/encoding"
)

var _ = Describe("Value", func() {
	DescribeTable("Mapping encoding bytes",
		func(b byte, want encoding.Encoding) {
			Expect(encoding.EncodingFromByte(b)).To(Equal(want))
		},
		Entry("When reading 0x00", byte(0x00), encoding.EncodingString),
		Entry("When reading 0x01", byte(0x01), encoding.EncodingInteger),
		Entry("When reading 0x02", byte(0x02), encoding.EncodingFloat),
	)

	It("should reject unknown encoding bytes", func() {
		for b := 0x03; b <= 0xFF; b++ {
			_, err := encoding.EncodingFromByte(byte(b))
			Expect(err).To(MatchError(encoding.ErrEncoding))
			Expect(err).ToNot(MatchError(encoding.ErrCorruptLog))
		}
	})

	It("should parse encoding names", func() {
		for _, enc := range encoding.Encodings {
			Expect(encoding.ParseEncoding(enc.String())).To(Equal(enc))
		}
		Expect(encoding.ParseEncoding("INTEGER")).To(Equal(encoding.EncodingInteger))
		_, err := encoding.ParseEncoding("bool")
		Expect(err).To(MatchError(encoding.ErrEncoding))
	})

	It("should store integers as 8 byte little-endian", func() {
		value := encoding.IntegerValue(42)
		Expect(value.Encoding).To(Equal(encoding.EncodingInteger))
		Expect(value.Bytes).To(Equal([]byte{42, 0, 0, 0, 0, 0, 0, 0}))
		Expect(value.Integer()).To(Equal(int64(42)))
		Expect(encoding.IntegerValue(-7).Integer()).To(Equal(int64(-7)))
		Expect(value.String()).To(Equal("42"))
	})

	It("should store floats as 8 byte IEEE-754", func() {
		value := encoding.FloatValue(1.5)
		Expect(value.Encoding).To(Equal(encoding.EncodingFloat))
		Expect(value.Bytes).To(HaveLen(8))
		Expect(value.Float()).To(Equal(1.5))
		Expect(encoding.FloatValue(math.Inf(-1)).String()).To(Equal("-Inf"))
	})

	It("should refuse to interpret payloads of the wrong encoding or size", func() {
		_, err := encoding.StringValue("12345678").Integer()
		Expect(err).To(MatchError(encoding.ErrEncoding))
		_, err = encoding.Value{Encoding: encoding.EncodingFloat, Bytes: []byte{1}}.Float()
		Expect(err).To(MatchError(encoding.ErrEncoding))
		Expect(encoding.Value{Encoding: encoding.EncodingInteger, Bytes: []byte{0xAB}}.String()).To(Equal("0xab"))
	})

	DescribeTable("Parsing values from text",
		func(enc encoding.Encoding, text string, want encoding.Value) {
			value, err := encoding.ParseValue(enc, text)
			Expect(err).ToNot(HaveOccurred())
			Expect(value.Equal(want)).To(BeTrue())
			Expect(value.String()).To(Equal(text))
		},
		Entry("When parsing a string", encoding.EncodingString, "hello", encoding.StringValue("hello")),
		Entry("When parsing an integer", encoding.EncodingInteger, "-123", encoding.IntegerValue(-123)),
		Entry("When parsing a float", encoding.EncodingFloat, "2.25", encoding.FloatValue(2.25)),
	)

	It("should fail parsing malformed numbers", func() {
		_, err := encoding.ParseValue(encoding.EncodingInteger, "1.5")
		Expect(err).To(HaveOccurred())
		_, err = encoding.ParseValue(encoding.EncodingFloat, "abc")
		Expect(err).To(HaveOccurred())
		_, err = encoding.ParseValue(encoding.Encoding(9), "abc")
		Expect(err).To(MatchError(encoding.ErrEncoding))
	})

	It("should not share payloads between clones", func() {
		original := encoding.StringValue("abc")
		clone := original.Clone()
		clone.Bytes[0] = 'x'
		Expect(string(original.Bytes)).To(Equal("abc"))
		Expect(clone.Equal(original)).To(BeFalse())
	})
})
