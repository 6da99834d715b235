package aggregation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// groupedIntDesc is the (group, value) input schema used by most tests.
func groupedIntDesc(t *testing.T) *tuple.TupleDescription {
	t.Helper()
	td, err := tuple.NewTupleDesc([]types.Type{types.StringType, types.IntType}, []string{"g", "v"})
	require.NoError(t, err)
	return td
}

func groupedIntTuple(t *testing.T, td *tuple.TupleDescription, group string, value int32) *tuple.Tuple {
	t.Helper()
	tup := tuple.NewTuple(td)
	require.NoError(t, tup.SetField(0, types.NewStringField(group, types.StringMaxSize)))
	require.NoError(t, tup.SetField(1, types.NewIntField(value)))
	return tup
}

// mergeAll feeds (group, value) pairs into an aggregator built for the
// given op, grouped by the string column.
func mergeAll(t *testing.T, op AggregateOp, rows map[string][]int32, order []string) *IntegerAggregator {
	t.Helper()

	td := groupedIntDesc(t)
	agg, err := NewIntegerAggregator(0, types.StringType, 1, op)
	require.NoError(t, err)

	for _, group := range order {
		for _, v := range rows[group] {
			require.NoError(t, agg.Merge(groupedIntTuple(t, td, group, v)))
		}
	}
	return agg
}

// resultMap drains an aggregator's iterator into group -> value.
func resultMap(t *testing.T, agg Aggregator) map[string]int32 {
	t.Helper()

	it, err := agg.Iterator()
	require.NoError(t, err)
	require.NoError(t, it.Open())
	defer it.Close()

	results := make(map[string]int32)
	require.NoError(t, iterator.ForEach(it, func(tup *tuple.Tuple) error {
		group, err := tup.GetField(0)
		require.NoError(t, err)
		value, err := tup.GetField(1)
		require.NoError(t, err)
		results[group.String()] = value.(*types.IntField).Value
		return nil
	}))
	return results
}

func TestGroupedAvgTruncates(t *testing.T) {
	agg := mergeAll(t, Avg, map[string][]int32{
		"A": {10, 20, 25},
		"B": {7},
	}, []string{"A", "B"})

	// AVG(A) = floor(55/3) = 18.
	assert.Equal(t, map[string]int32{"A": 18, "B": 7}, resultMap(t, agg))
}

func TestGroupedSum(t *testing.T) {
	agg := mergeAll(t, Sum, map[string][]int32{
		"A": {1, 2, 3},
		"B": {-5, 5},
	}, []string{"A", "B"})

	assert.Equal(t, map[string]int32{"A": 6, "B": 0}, resultMap(t, agg))
}

func TestGroupedMinMax(t *testing.T) {
	rows := map[string][]int32{
		"A": {3, -1, 2},
		"B": {9},
	}

	minAgg := mergeAll(t, Min, rows, []string{"A", "B"})
	assert.Equal(t, map[string]int32{"A": -1, "B": 9}, resultMap(t, minAgg))

	maxAgg := mergeAll(t, Max, rows, []string{"A", "B"})
	assert.Equal(t, map[string]int32{"A": 3, "B": 9}, resultMap(t, maxAgg))
}

func TestGroupedCount(t *testing.T) {
	agg := mergeAll(t, Count, map[string][]int32{
		"A": {1, 1, 1},
		"B": {2},
	}, []string{"A", "B"})

	assert.Equal(t, map[string]int32{"A": 3, "B": 1}, resultMap(t, agg))
}

func TestNoGroupingSingleRow(t *testing.T) {
	td := groupedIntDesc(t)

	agg, err := NewIntegerAggregator(NoGrouping, 0, 1, Sum)
	require.NoError(t, err)

	for _, v := range []int32{5, 6, 7} {
		require.NoError(t, agg.Merge(groupedIntTuple(t, td, "ignored", v)))
	}

	it, err := agg.Iterator()
	require.NoError(t, err)
	require.NoError(t, it.Open())
	defer it.Close()

	results, err := iterator.Collect(it)
	require.NoError(t, err)
	require.Len(t, results, 1)

	value, err := results[0].GetField(0)
	require.NoError(t, err)
	assert.Equal(t, int32(18), value.(*types.IntField).Value)
}

func TestResultsInFirstSeenGroupOrder(t *testing.T) {
	agg := mergeAll(t, Count, map[string][]int32{
		"z": {1},
		"a": {1},
		"m": {1},
	}, []string{"z", "a", "m"})

	it, err := agg.Iterator()
	require.NoError(t, err)
	require.NoError(t, it.Open())
	defer it.Close()

	var order []string
	require.NoError(t, iterator.ForEach(it, func(tup *tuple.Tuple) error {
		group, _ := tup.GetField(0)
		order = append(order, group.String())
		return nil
	}))

	assert.Equal(t, []string{"z", "a", "m"}, order)
}

func TestMergeNonIntegerFieldFails(t *testing.T) {
	td := groupedIntDesc(t)

	agg, err := NewIntegerAggregator(1, types.IntType, 0, Count)
	require.NoError(t, err)

	// Field 0 is the string column.
	err = agg.Merge(groupedIntTuple(t, td, "A", 1))
	assert.Error(t, err)
}

func TestResultSchema(t *testing.T) {
	grouped, err := NewIntegerAggregator(0, types.StringType, 1, Avg)
	require.NoError(t, err)
	assert.Equal(t, 2, grouped.GetTupleDesc().NumFields())

	plain, err := NewIntegerAggregator(NoGrouping, 0, 1, Avg)
	require.NoError(t, err)
	assert.Equal(t, 1, plain.GetTupleDesc().NumFields())
}
