package primitives

import (
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Filepath is a type-safe wrapper around file paths used by the storage
// layer for heap files and other on-disk structures.
type Filepath string

// Abs resolves the path to its absolute form. Table identity is defined
// over absolute paths, so callers should resolve before hashing.
func (f Filepath) Abs() (Filepath, error) {
	abs, err := filepath.Abs(string(f))
	if err != nil {
		return "", err
	}
	return Filepath(abs), nil
}

// Hash generates the TableID for this path. The hash is deterministic for
// a given path but not collision-free across tables; the catalog refuses
// duplicate registrations.
func (f Filepath) Hash() TableID {
	return TableID(xxhash.Sum64String(string(f)))
}

func (f Filepath) String() string {
	return string(f)
}

func (f Filepath) IsEmpty() bool {
	return string(f) == ""
}

// Exists checks whether the file exists on the filesystem.
func (f Filepath) Exists() bool {
	_, err := os.Stat(string(f))
	return err == nil
}

// Remove deletes the file. The operation is idempotent.
func (f Filepath) Remove() error {
	if !f.Exists() {
		return nil
	}
	return os.Remove(string(f))
}
