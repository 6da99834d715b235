package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/types"
)

func TestNewTupleDescValidation(t *testing.T) {
	_, err := NewTupleDesc(nil, nil)
	assert.Error(t, err)

	_, err = NewTupleDesc([]types.Type{types.IntType}, []string{"a", "b"})
	assert.Error(t, err)
}

func TestTupleDescSize(t *testing.T) {
	td, err := NewTupleDesc([]types.Type{types.IntType, types.IntType}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), td.GetSize())

	td, err = NewTupleDesc([]types.Type{types.IntType, types.StringType}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4+types.StringType.Size(), td.GetSize())
}

func TestTupleDescEqualsIgnoresNames(t *testing.T) {
	td1, _ := NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"a", "b"})
	td2, _ := NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"x", "y"})
	td3, _ := NewTupleDesc([]types.Type{types.IntType, types.StringType}, nil)
	td4, _ := NewTupleDesc([]types.Type{types.StringType, types.IntType}, nil)
	td5, _ := NewTupleDesc([]types.Type{types.IntType}, nil)

	assert.True(t, td1.Equals(td2))
	assert.True(t, td1.Equals(td3))
	assert.False(t, td1.Equals(td4))
	assert.False(t, td1.Equals(td5))
	assert.False(t, td1.Equals(nil))
}

func TestTupleDescCombine(t *testing.T) {
	td1, _ := NewTupleDesc([]types.Type{types.IntType}, []string{"id"})
	td2, _ := NewTupleDesc([]types.Type{types.StringType, types.IntType}, []string{"name", "age"})

	combined := Combine(td1, td2)
	require.NotNil(t, combined)

	assert.Equal(t, 3, combined.NumFields())
	assert.Equal(t, td1.GetSize()+td2.GetSize(), combined.GetSize())

	name, _ := combined.GetFieldName(1)
	assert.Equal(t, "name", name)

	fieldType, err := combined.TypeAtIndex(2)
	require.NoError(t, err)
	assert.Equal(t, types.IntType, fieldType)
}

func TestTupleDescCombineWithNil(t *testing.T) {
	td, _ := NewTupleDesc([]types.Type{types.IntType}, nil)

	assert.Equal(t, td, Combine(td, nil))
	assert.Equal(t, td, Combine(nil, td))
	assert.Nil(t, Combine(nil, nil))
}

func TestFindFieldIndex(t *testing.T) {
	td, _ := NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"id", "name"})

	idx, err := td.FindFieldIndex("name")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = td.FindFieldIndex("missing")
	assert.Error(t, err)
}
