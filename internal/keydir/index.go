package keydir

import (
	"errors"
	"strings"

	"github.com/backbone81/walkv/internal/encoding"
)

// ErrIndexTypeUnsupported is returned for unknown index types.
var ErrIndexTypeUnsupported = errors.New("unsupported index type")

// Index maps keys to values. Implementations store the values they are given without copying them.
//
// Instances are NOT safe for concurrent use.
type Index interface {
	// Get returns the value of the key and whether the key is present.
	Get(key string) (encoding.Value, bool)

	// Put inserts the key or overwrites its value.
	Put(key string, value encoding.Value)

	// Delete removes the key. It reports whether the key was present.
	Delete(key string) bool

	// Len returns the number of keys.
	Len() int

	// Keys returns all keys in ascending byte order.
	Keys() []string
}

// IndexType describes the data structure backing an Index.
type IndexType int

const (
	IndexTypeMap IndexType = iota + 1 // We do not start at 0 to detect missing values.
	IndexTypeBTree
	IndexTypeART
)

// String returns a string representation of the index type.
func (t IndexType) String() string {
	switch t {
	case IndexTypeMap:
		return "map"
	case IndexTypeBTree:
		return "btree"
	case IndexTypeART:
		return "art"
	default:
		return "unknown"
	}
}

// IndexTypes provides a list of supported index types. Helpful for writing tests and benchmarks which iterate over all
// possibilities.
var IndexTypes = []IndexType{
	IndexTypeMap,
	IndexTypeBTree,
	IndexTypeART,
}

// DefaultIndexType is the index used when nothing else is configured.
const DefaultIndexType = IndexTypeMap

// ParseIndexType maps the name of an index type as returned by IndexType.String back to the type.
func ParseIndexType(name string) (IndexType, error) {
	for _, indexType := range IndexTypes {
		if strings.EqualFold(indexType.String(), name) {
			return indexType, nil
		}
	}
	return 0, ErrIndexTypeUnsupported
}

// New returns an empty index of the given type.
func New(indexType IndexType) (Index, error) {
	switch indexType {
	case IndexTypeMap:
		return NewMap(), nil
	case IndexTypeBTree:
		return NewBTree(), nil
	case IndexTypeART:
		return NewART(), nil
	default:
		return nil, ErrIndexTypeUnsupported
	}
}
