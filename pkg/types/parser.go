package types

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ParseField reads one field of the given type from the stream. It consumes
// exactly fieldType.Size() bytes, mirroring the layout written by the
// field's Serialize.
func ParseField(r io.Reader, fieldType Type) (Field, error) {
	switch fieldType {
	case IntType:
		return parseIntField(r)
	case StringType:
		return parseStringField(r)
	default:
		return nil, fmt.Errorf("cannot parse field of unknown type %v", fieldType)
	}
}

func parseIntField(r io.Reader) (*IntField, error) {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("failed to read int field: %w", err)
	}
	return NewIntField(int32(binary.BigEndian.Uint32(buf))), nil
}

func parseStringField(r io.Reader) (*StringField, error) {
	lengthBytes := make([]byte, 4)
	if _, err := io.ReadFull(r, lengthBytes); err != nil {
		return nil, fmt.Errorf("failed to read string length: %w", err)
	}

	length := binary.BigEndian.Uint32(lengthBytes)
	if length > StringMaxSize {
		return nil, fmt.Errorf("corrupt string field: length %d exceeds capacity %d", length, StringMaxSize)
	}

	payload := make([]byte, StringMaxSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("failed to read string payload: %w", err)
	}

	return NewStringField(string(payload[:length]), StringMaxSize), nil
}
