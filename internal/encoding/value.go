package encoding

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encoding describes how the bytes of a value are to be interpreted.
type Encoding uint8

const (
	EncodingString  Encoding = 0x00
	EncodingInteger Encoding = 0x01
	EncodingFloat   Encoding = 0x02
)

// String returns a string representation of the encoding.
func (e Encoding) String() string {
	switch e {
	case EncodingString:
		return "string"
	case EncodingInteger:
		return "integer"
	case EncodingFloat:
		return "float"
	default:
		return "unknown" //nolint:goconst
	}
}

// Encodings provides a list of supported encodings. Helpful for writing tests and benchmarks which iterate over all
// possibilities.
var Encodings = []Encoding{
	EncodingString,
	EncodingInteger,
	EncodingFloat,
}

// EncodingFromByte maps the encoding byte of a frame to an encoding. Unknown bytes result in ErrEncoding.
func EncodingFromByte(b byte) (Encoding, error) {
	switch Encoding(b) {
	case EncodingString, EncodingInteger, EncodingFloat:
		return Encoding(b), nil
	default:
		return 0, fmt.Errorf("%w: 0x%02x", ErrEncoding, b)
	}
}

// ParseEncoding maps the name of an encoding as returned by Encoding.String back to the encoding.
func ParseEncoding(name string) (Encoding, error) {
	for _, encoding := range Encodings {
		if strings.EqualFold(name, encoding.String()) {
			return encoding, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrEncoding, name)
}

// Value is a tagged byte payload. The encoding tells how to interpret the bytes.
//
// Integers are stored as 8 byte little-endian two's complement, floats as the 8 byte little-endian IEEE-754 bits.
type Value struct {
	Encoding Encoding
	Bytes    []byte
}

// StringValue creates a value holding the given text.
func StringValue(s string) Value {
	return Value{
		Encoding: EncodingString,
		Bytes:    []byte(s),
	}
}

// IntegerValue creates a value holding the given integer.
func IntegerValue(i int64) Value {
	return Value{
		Encoding: EncodingInteger,
		Bytes:    Endian.AppendUint64(make([]byte, 0, 8), uint64(i)), //nolint:gosec // two's complement is intended
	}
}

// FloatValue creates a value holding the given float.
func FloatValue(f float64) Value {
	return Value{
		Encoding: EncodingFloat,
		Bytes:    Endian.AppendUint64(make([]byte, 0, 8), math.Float64bits(f)),
	}
}

// ParseValue creates a value from its textual representation.
func ParseValue(encoding Encoding, text string) (Value, error) {
	switch encoding {
	case EncodingString:
		return StringValue(text), nil
	case EncodingInteger:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parsing integer value: %w", err)
		}
		return IntegerValue(i), nil
	case EncodingFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parsing float value: %w", err)
		}
		return FloatValue(f), nil
	default:
		return Value{}, fmt.Errorf("%w: 0x%02x", ErrEncoding, byte(encoding))
	}
}

// Integer interprets the value as integer. An error is returned when the value is not an integer of 8 bytes.
func (v Value) Integer() (int64, error) {
	if v.Encoding != EncodingInteger || len(v.Bytes) != 8 {
		return 0, fmt.Errorf("%w: %s value of %d bytes is no integer", ErrEncoding, v.Encoding, len(v.Bytes))
	}
	return int64(Endian.Uint64(v.Bytes)), nil //nolint:gosec // two's complement is intended
}

// Float interprets the value as float. An error is returned when the value is not a float of 8 bytes.
func (v Value) Float() (float64, error) {
	if v.Encoding != EncodingFloat || len(v.Bytes) != 8 {
		return 0, fmt.Errorf("%w: %s value of %d bytes is no float", ErrEncoding, v.Encoding, len(v.Bytes))
	}
	return math.Float64frombits(Endian.Uint64(v.Bytes)), nil
}

// String renders the value for humans. Payloads which do not fit their encoding are rendered as hex.
func (v Value) String() string {
	switch v.Encoding {
	case EncodingString:
		return string(v.Bytes)
	case EncodingInteger:
		if i, err := v.Integer(); err == nil {
			return strconv.FormatInt(i, 10)
		}
	case EncodingFloat:
		if f, err := v.Float(); err == nil {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	}
	return fmt.Sprintf("0x%x", v.Bytes)
}

// Clone returns a deep copy of the value. The store never shares payloads with its callers.
func (v Value) Clone() Value {
	return Value{
		Encoding: v.Encoding,
		Bytes:    bytes.Clone(v.Bytes),
	}
}

// Equal reports if both values have the same encoding and payload. A nil and an empty payload are equal.
func (v Value) Equal(other Value) bool {
	return v.Encoding == other.Encoding && bytes.Equal(v.Bytes, other.Bytes)
}
