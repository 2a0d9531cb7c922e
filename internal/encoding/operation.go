package encoding

// Operation describes the mutation a frame records.
type Operation uint8

const (
	OperationSet    Operation = 0x01
	OperationDelete Operation = 0x02
)

// String returns a string representation of the operation.
func (o Operation) String() string {
	switch o {
	case OperationSet:
		return "set"
	case OperationDelete:
		return "delete"
	default:
		return "unknown" //nolint:goconst
	}
}

// Valid reports if the operation is one of the known operations.
func (o Operation) Valid() bool {
	return o == OperationSet || o == OperationDelete
}
