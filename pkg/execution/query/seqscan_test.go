package query

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/iterator"
	"heapdb/pkg/memory"
	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/heap"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// scanFixture builds a one-column int table spread over two pages, holding
// rows 1..5 in page order.
func scanFixture(t *testing.T) (primitives.TableID, *memory.TableManager, *memory.PageStore) {
	t.Helper()

	td, err := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{"v"})
	require.NoError(t, err)

	path := primitives.Filepath(filepath.Join(t.TempDir(), "nums.dat"))
	hf, err := heap.NewHeapFile(path, td)
	require.NoError(t, err)
	t.Cleanup(func() { hf.Close() })

	for pageNo, values := range [][]int32{{1, 2, 3}, {4, 5}} {
		hp, err := heap.NewHeapPage(heap.NewHeapPageID(hf.GetID(), pageNo), heap.CreateEmptyPageData(), td)
		require.NoError(t, err)

		for _, v := range values {
			tup := tuple.NewTuple(td)
			require.NoError(t, tup.SetField(0, types.NewIntField(v)))
			require.NoError(t, hp.InsertTuple(tup))
		}
		require.NoError(t, hf.WritePage(hp))
	}

	tm := memory.NewTableManager()
	require.NoError(t, tm.AddTable(hf, "nums"))

	return hf.GetID(), tm, memory.NewPageStore(tm, memory.DefaultPageCount)
}

func TestSeqScanReadsAllRows(t *testing.T) {
	tableID, tm, store := scanFixture(t)

	scan, err := NewSeqScan(transaction.NewTransactionID(), tableID, tm, store)
	require.NoError(t, err)

	require.NoError(t, scan.Open())
	defer scan.Close()

	assert.Equal(t, []int32{1, 2, 3, 4, 5}, collectInts(t, scan))
}

func TestSeqScanWithFilter(t *testing.T) {
	tableID, tm, store := scanFixture(t)

	scan, err := NewSeqScan(transaction.NewTransactionID(), tableID, tm, store)
	require.NoError(t, err)

	filter, err := NewFilter(NewPredicate(0, primitives.GreaterThan, types.NewIntField(2)), scan)
	require.NoError(t, err)

	require.NoError(t, filter.Open())
	defer filter.Close()

	assert.Equal(t, []int32{3, 4, 5}, collectInts(t, filter))
}

func TestSeqScanRewind(t *testing.T) {
	tableID, tm, store := scanFixture(t)

	scan, err := NewSeqScan(transaction.NewTransactionID(), tableID, tm, store)
	require.NoError(t, err)

	require.NoError(t, scan.Open())
	defer scan.Close()

	first := collectInts(t, scan)
	require.NoError(t, scan.Rewind())
	second := collectInts(t, scan)

	assert.Equal(t, first, second)
}

func TestSeqScanUnknownTable(t *testing.T) {
	_, tm, store := scanFixture(t)

	_, err := NewSeqScan(transaction.NewTransactionID(), 424242, tm, store)
	assert.Error(t, err)
}

func TestSeqScanIsLeaf(t *testing.T) {
	tableID, tm, store := scanFixture(t)

	scan, err := NewSeqScan(transaction.NewTransactionID(), tableID, tm, store)
	require.NoError(t, err)

	assert.Empty(t, scan.GetChildren())
	assert.NoError(t, scan.SetChildren(nil))
	assert.Error(t, scan.SetChildren([]iterator.DbIterator{intSource(t, 1)}))
}
