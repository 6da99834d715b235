package primitives

// TableID uniquely identifies a table. It is derived from hashing the
// absolute path of the table's backing file, so the same path yields the
// same id across process runs.
type TableID uint64

// HashCode represents a hash value computed over a field or key.
type HashCode uint64

// InvalidTableID represents an unset table identifier.
const InvalidTableID TableID = 0
