package types

// StringMaxSize is the fixed payload capacity of a serialized string field
// in bytes. Every string slot on disk occupies 4 length bytes plus this
// many payload bytes, so rows have a fixed width.
const StringMaxSize = 128

// Type enumerates the field types understood by the storage engine.
type Type int

const (
	IntType Type = iota
	StringType
)

func (t Type) String() string {
	switch t {
	case IntType:
		return "INT_TYPE"
	case StringType:
		return "STRING_TYPE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// Size returns the number of bytes a serialized field of this type
// occupies on disk. Sizes are fixed per type.
func (t Type) Size() uint32 {
	switch t {
	case IntType:
		return 4
	case StringType:
		return 4 + StringMaxSize
	default:
		return 0
	}
}
