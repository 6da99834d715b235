package types

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"

	"heapdb/pkg/primitives"
)

// StringField represents a fixed-capacity string field. Values longer than
// the capacity are truncated at construction.
type StringField struct {
	Value   string
	MaxSize int
}

func NewStringField(value string, maxSize int) *StringField {
	if len(value) > maxSize {
		value = value[:maxSize]
	}

	return &StringField{
		Value:   value,
		MaxSize: maxSize,
	}
}

// Serialize writes the field as a 4-byte big-endian length followed by the
// string bytes, zero-padded up to MaxSize.
func (s *StringField) Serialize(w io.Writer) error {
	length := min(len(s.Value), s.MaxSize)

	lengthBytes := make([]byte, 4)
	binary.BigEndian.PutUint32(lengthBytes, uint32(length))

	if _, err := w.Write(lengthBytes); err != nil {
		return err
	}

	if _, err := w.Write([]byte(s.Value[:length])); err != nil {
		return err
	}

	padding := make([]byte, s.MaxSize-length)
	_, err := w.Write(padding)
	return err
}

// Compare evaluates the predicate lexicographically. Like is substring
// containment of the operand within this field's value.
func (s *StringField) Compare(op primitives.Predicate, other Field) (bool, error) {
	otherString, ok := other.(*StringField)
	if !ok {
		return false, nil
	}

	cmp := strings.Compare(s.Value, otherString.Value)

	switch op {
	case primitives.Equals:
		return cmp == 0, nil
	case primitives.LessThan:
		return cmp < 0, nil
	case primitives.GreaterThan:
		return cmp > 0, nil
	case primitives.LessThanOrEqual:
		return cmp <= 0, nil
	case primitives.GreaterThanOrEqual:
		return cmp >= 0, nil
	case primitives.NotEqual:
		return cmp != 0, nil
	case primitives.Like:
		return strings.Contains(s.Value, otherString.Value), nil
	default:
		return false, nil
	}
}

func (s *StringField) Type() Type {
	return StringType
}

func (s *StringField) Equals(other Field) bool {
	otherString, ok := other.(*StringField)
	if !ok {
		return false
	}
	return s.Value == otherString.Value && s.MaxSize == otherString.MaxSize
}

func (s *StringField) Hash() primitives.HashCode {
	return primitives.HashCode(xxhash.Sum64String(s.Value))
}

func (s *StringField) String() string {
	return s.Value
}
