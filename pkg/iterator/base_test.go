package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

func makeTuples(t *testing.T, values ...int32) (*tuple.TupleDescription, []*tuple.Tuple) {
	t.Helper()

	td, err := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"})
	require.NoError(t, err)

	tuples := make([]*tuple.Tuple, 0, len(values))
	for _, v := range values {
		tup := tuple.NewTuple(td)
		require.NoError(t, tup.SetField(0, types.NewIntField(v)))
		tuples = append(tuples, tup)
	}
	return td, tuples
}

func TestNextBeforeOpenFails(t *testing.T) {
	td, tuples := makeTuples(t, 1, 2)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrNotOpened)

	_, err = it.HasNext()
	assert.ErrorIs(t, err, ErrNotOpened)
}

func TestNextAfterCloseFails(t *testing.T) {
	td, tuples := makeTuples(t, 1)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	require.NoError(t, it.Open())
	require.NoError(t, it.Close())

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrNotOpened)
}

func TestNextPastEndFails(t *testing.T) {
	td, tuples := makeTuples(t, 1)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	require.NoError(t, it.Open())

	_, err = it.Next()
	require.NoError(t, err)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrNoMoreTuples)
}

func TestHasNextIsIdempotent(t *testing.T) {
	td, tuples := makeTuples(t, 7)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	require.NoError(t, it.Open())

	for i := 0; i < 3; i++ {
		hasNext, err := it.HasNext()
		require.NoError(t, err)
		assert.True(t, hasNext)
	}

	tup, err := it.Next()
	require.NoError(t, err)

	field, _ := tup.GetField(0)
	assert.True(t, field.Equals(types.NewIntField(7)))

	hasNext, err := it.HasNext()
	require.NoError(t, err)
	assert.False(t, hasNext)
}

func TestRewindReplaysSequence(t *testing.T) {
	td, tuples := makeTuples(t, 1, 2, 3)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	require.NoError(t, it.Open())

	first, err := Collect(it)
	require.NoError(t, err)
	require.Len(t, first, 3)

	require.NoError(t, it.Rewind())

	second, err := Collect(it)
	require.NoError(t, err)
	require.Len(t, second, 3)

	for i := range first {
		assert.Equal(t, first[i].String(), second[i].String())
	}
}

func TestCountAndCollect(t *testing.T) {
	td, tuples := makeTuples(t, 4, 5, 6)
	it, err := NewTupleListIterator(td, tuples)
	require.NoError(t, err)

	require.NoError(t, it.Open())

	count, err := Count(it)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTupleListIteratorSchemaMismatch(t *testing.T) {
	td, _ := makeTuples(t)
	otherTd, otherTuples := makeStringTuples(t, "x")

	_, err := NewTupleListIterator(td, otherTuples)
	assert.Error(t, err)

	_, err = NewTupleListIterator(otherTd, otherTuples)
	assert.NoError(t, err)
}

func makeStringTuples(t *testing.T, values ...string) (*tuple.TupleDescription, []*tuple.Tuple) {
	t.Helper()

	td, err := tuple.NewTupleDesc([]types.Type{types.StringType}, []string{"s"})
	require.NoError(t, err)

	tuples := make([]*tuple.Tuple, 0, len(values))
	for _, v := range values {
		tup := tuple.NewTuple(td)
		require.NoError(t, tup.SetField(0, types.NewStringField(v, types.StringMaxSize)))
		tuples = append(tuples, tup)
	}
	return td, tuples
}
