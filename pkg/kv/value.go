package kv

import intencoding "github.com/backbone81/walkv/internal/encoding"

// Value is a tagged byte payload. The encoding tells how to interpret the bytes.
type Value = intencoding.Value

// Encoding describes how the bytes of a value are to be interpreted.
type Encoding = intencoding.Encoding

const (
	EncodingString  = intencoding.EncodingString
	EncodingInteger = intencoding.EncodingInteger
	EncodingFloat   = intencoding.EncodingFloat
)

// StringValue creates a value holding the given text.
var StringValue = intencoding.StringValue

// IntegerValue creates a value holding the given integer.
var IntegerValue = intencoding.IntegerValue

// FloatValue creates a value holding the given float.
var FloatValue = intencoding.FloatValue

// ParseValue creates a value from its textual representation.
var ParseValue = intencoding.ParseValue

// ParseEncoding maps the name of an encoding back to the encoding.
var ParseEncoding = intencoding.ParseEncoding
