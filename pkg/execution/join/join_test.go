package join

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/iterator"
	"heapdb/pkg/primitives"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

type intStringRow struct {
	id   int32
	name string
}

func intStringSource(t *testing.T, rows ...intStringRow) iterator.DbIterator {
	t.Helper()

	td, err := tuple.NewTupleDesc([]types.Type{types.IntType, types.StringType}, []string{"id", "name"})
	require.NoError(t, err)

	tuples := make([]*tuple.Tuple, 0, len(rows))
	for _, row := range rows {
		tup := tuple.NewTuple(td)
		require.NoError(t, tup.SetField(0, types.NewIntField(row.id)))
		require.NoError(t, tup.SetField(1, types.NewStringField(row.name, types.StringMaxSize)))
		tuples = append(tuples, tup)
	}

	src, err := iterator.NewTupleListIterator(td, tuples)
	require.NoError(t, err)
	return src
}

func rowStrings(t *testing.T, op iterator.DbIterator) []string {
	t.Helper()

	tuples, err := iterator.Collect(op)
	require.NoError(t, err)

	out := make([]string, 0, len(tuples))
	for _, tup := range tuples {
		out = append(out, tup.String())
	}
	return out
}

func equalityJoin(t *testing.T, left, right iterator.DbIterator) *Join {
	t.Helper()

	pred, err := NewJoinPredicate(0, 0, primitives.Equals)
	require.NoError(t, err)

	j, err := NewJoin(pred, left, right)
	require.NoError(t, err)
	return j
}

func TestNestedLoopsJoinOrder(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"}, intStringRow{2, "b"}, intStringRow{3, "c"})
	right := intStringSource(t, intStringRow{1, "x"}, intStringRow{3, "y"}, intStringRow{3, "z"})

	j := equalityJoin(t, left, right)
	require.NoError(t, j.Open())
	defer j.Close()

	assert.Equal(t, []string{
		"1\ta\t1\tx",
		"3\tc\t3\ty",
		"3\tc\t3\tz",
	}, rowStrings(t, j))
}

func TestJoinCardinality(t *testing.T) {
	// Two left rows match two right rows each: 2*2 output rows.
	left := intStringSource(t, intStringRow{7, "l1"}, intStringRow{7, "l2"})
	right := intStringSource(t, intStringRow{7, "r1"}, intStringRow{7, "r2"})

	j := equalityJoin(t, left, right)
	require.NoError(t, j.Open())
	defer j.Close()

	count, err := iterator.Count(j)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestJoinNoMatches(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"})
	right := intStringSource(t, intStringRow{2, "b"})

	j := equalityJoin(t, left, right)
	require.NoError(t, j.Open())
	defer j.Close()

	hasNext, err := j.HasNext()
	require.NoError(t, err)
	assert.False(t, hasNext)
}

func TestJoinEmptyLeft(t *testing.T) {
	left := intStringSource(t)
	right := intStringSource(t, intStringRow{1, "b"})

	j := equalityJoin(t, left, right)
	require.NoError(t, j.Open())
	defer j.Close()

	count, err := iterator.Count(j)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestJoinSchemaIsConcatenation(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"})
	right := intStringSource(t, intStringRow{1, "b"})

	j := equalityJoin(t, left, right)

	td := j.GetTupleDesc()
	require.Equal(t, 4, td.NumFields())

	expected := []types.Type{types.IntType, types.StringType, types.IntType, types.StringType}
	for i, want := range expected {
		got, err := td.TypeAtIndex(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestJoinRewind(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"}, intStringRow{2, "b"})
	right := intStringSource(t, intStringRow{1, "x"}, intStringRow{2, "y"})

	j := equalityJoin(t, left, right)
	require.NoError(t, j.Open())
	defer j.Close()

	first := rowStrings(t, j)
	require.NoError(t, j.Rewind())
	second := rowStrings(t, j)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestJoinLifecycle(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"})
	right := intStringSource(t, intStringRow{1, "x"})

	j := equalityJoin(t, left, right)

	_, err := j.Next()
	assert.ErrorIs(t, err, iterator.ErrNotOpened)

	require.NoError(t, j.Open())
	require.NoError(t, j.Close())

	_, err = j.Next()
	assert.ErrorIs(t, err, iterator.ErrNotOpened)
}

func TestJoinChildren(t *testing.T) {
	left := intStringSource(t, intStringRow{1, "a"})
	right := intStringSource(t, intStringRow{1, "x"})

	j := equalityJoin(t, left, right)
	assert.Len(t, j.GetChildren(), 2)

	assert.Error(t, j.SetChildren([]iterator.DbIterator{left}))
	assert.NoError(t, j.SetChildren([]iterator.DbIterator{left, right}))
}

func TestJoinPredicateLessThan(t *testing.T) {
	pred, err := NewJoinPredicate(0, 0, primitives.LessThan)
	require.NoError(t, err)

	left := intStringSource(t, intStringRow{1, "a"}, intStringRow{5, "b"})
	right := intStringSource(t, intStringRow{3, "x"})

	j, err := NewJoin(pred, left, right)
	require.NoError(t, err)

	require.NoError(t, j.Open())
	defer j.Close()

	rows := rowStrings(t, j)
	assert.Equal(t, []string{"1\ta\t3\tx"}, rows)
}

func TestJoinPredicateValidation(t *testing.T) {
	_, err := NewJoinPredicate(-1, 0, primitives.Equals)
	assert.Error(t, err)

	_, err = NewJoinPredicate(0, -1, primitives.Equals)
	assert.Error(t, err)
}

var _ iterator.Operator = (*Join)(nil)
