package types

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/primitives"
)

func TestIntFieldSerialize(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIntField(1).Serialize(&buf))

	assert.Equal(t, []byte{0, 0, 0, 1}, buf.Bytes())
}

func TestIntFieldSerializeNegative(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIntField(-1).Serialize(&buf))

	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0xff}, buf.Bytes())
}

func TestIntFieldSerializeWidth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewIntField(123456).Serialize(&buf))

	assert.Equal(t, int(IntType.Size()), buf.Len())
}

func TestIntFieldCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int32
		op       primitives.Predicate
		expected bool
	}{
		{"equal values", 5, 5, primitives.Equals, true},
		{"unequal values", 5, 6, primitives.Equals, false},
		{"less than", 5, 6, primitives.LessThan, true},
		{"not less than", 6, 5, primitives.LessThan, false},
		{"greater than", 6, 5, primitives.GreaterThan, true},
		{"less than or equal", 5, 5, primitives.LessThanOrEqual, true},
		{"greater than or equal", 5, 6, primitives.GreaterThanOrEqual, false},
		{"not equal", 5, 6, primitives.NotEqual, true},
		{"negative comparison", -3, 2, primitives.LessThan, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewIntField(tt.a).Compare(tt.op, NewIntField(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIntFieldLikeIsAlwaysFalse(t *testing.T) {
	result, err := NewIntField(5).Compare(primitives.Like, NewIntField(5))
	require.NoError(t, err)
	assert.False(t, result)
}

func TestIntFieldCompareDifferentTypeIsFalse(t *testing.T) {
	result, err := NewIntField(5).Compare(primitives.Equals, NewStringField("5", StringMaxSize))
	require.NoError(t, err)
	assert.False(t, result)
}

func TestIntFieldEquals(t *testing.T) {
	assert.True(t, NewIntField(7).Equals(NewIntField(7)))
	assert.False(t, NewIntField(7).Equals(NewIntField(8)))
	assert.False(t, NewIntField(7).Equals(NewStringField("7", StringMaxSize)))
}

func TestIntFieldHashStable(t *testing.T) {
	assert.Equal(t, NewIntField(42).Hash(), NewIntField(42).Hash())
	assert.NotEqual(t, NewIntField(42).Hash(), NewIntField(43).Hash())
}
