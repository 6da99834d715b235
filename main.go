package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"heapdb/pkg/concurrency/transaction"
	"heapdb/pkg/execution/aggregation"
	"heapdb/pkg/execution/join"
	"heapdb/pkg/execution/query"
	"heapdb/pkg/iterator"
	"heapdb/pkg/memory"
	"heapdb/pkg/primitives"
	"heapdb/pkg/storage/heap"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// Demo: build two small tables on disk, then run a filter, a join and a
// grouped aggregate over them.
func main() {
	dataDir, err := os.MkdirTemp("", "heapdb-demo")
	if err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}
	defer os.RemoveAll(dataDir)

	tm := memory.NewTableManager()
	store := memory.NewPageStore(tm, memory.DefaultPageCount)

	usersID, err := createTable(tm, filepath.Join(dataDir, "users.dat"), "users",
		[]types.Type{types.IntType, types.StringType}, []string{"id", "name"})
	if err != nil {
		log.Fatalf("failed to create users table: %v", err)
	}

	ordersID, err := createTable(tm, filepath.Join(dataDir, "orders.dat"), "orders",
		[]types.Type{types.IntType, types.IntType}, []string{"user_id", "amount"})
	if err != nil {
		log.Fatalf("failed to create orders table: %v", err)
	}

	tid := transaction.NewTransactionID()

	users := [][]types.Field{
		{types.NewIntField(1), types.NewStringField("ada", types.StringMaxSize)},
		{types.NewIntField(2), types.NewStringField("brian", types.StringMaxSize)},
		{types.NewIntField(3), types.NewStringField("cyn", types.StringMaxSize)},
	}
	orders := [][]types.Field{
		{types.NewIntField(1), types.NewIntField(10)},
		{types.NewIntField(1), types.NewIntField(20)},
		{types.NewIntField(3), types.NewIntField(7)},
	}

	if err := insertRows(store, tm, tid, usersID, users); err != nil {
		log.Fatalf("failed to insert users: %v", err)
	}
	if err := insertRows(store, tm, tid, ordersID, orders); err != nil {
		log.Fatalf("failed to insert orders: %v", err)
	}

	// Filter: orders with amount > 8.
	orderScan, err := query.NewSeqScan(tid, ordersID, tm, store)
	if err != nil {
		log.Fatalf("failed to build scan: %v", err)
	}
	filter, err := query.NewFilter(
		query.NewPredicate(1, primitives.GreaterThan, types.NewIntField(8)), orderScan)
	if err != nil {
		log.Fatalf("failed to build filter: %v", err)
	}
	if err := printAll("orders with amount > 8", filter); err != nil {
		log.Fatalf("filter failed: %v", err)
	}

	// Join: users joined with their orders on id.
	userScan, err := query.NewSeqScan(tid, usersID, tm, store)
	if err != nil {
		log.Fatalf("failed to build scan: %v", err)
	}
	orderScan2, err := query.NewSeqScan(tid, ordersID, tm, store)
	if err != nil {
		log.Fatalf("failed to build scan: %v", err)
	}
	joinPred, err := join.NewJoinPredicate(0, 0, primitives.Equals)
	if err != nil {
		log.Fatalf("failed to build join predicate: %v", err)
	}
	joined, err := join.NewJoin(joinPred, userScan, orderScan2)
	if err != nil {
		log.Fatalf("failed to build join: %v", err)
	}
	if err := printAll("users joined with orders", joined); err != nil {
		log.Fatalf("join failed: %v", err)
	}

	// Aggregate: total order amount per user.
	orderScan3, err := query.NewSeqScan(tid, ordersID, tm, store)
	if err != nil {
		log.Fatalf("failed to build scan: %v", err)
	}
	sums, err := aggregation.NewAggregate(orderScan3, 1, 0, aggregation.Sum)
	if err != nil {
		log.Fatalf("failed to build aggregate: %v", err)
	}
	if err := printAll("order totals per user", sums); err != nil {
		log.Fatalf("aggregate failed: %v", err)
	}
}

func createTable(tm *memory.TableManager, path, name string, fieldTypes []types.Type, fieldNames []string) (primitives.TableID, error) {
	td, err := tuple.NewTupleDesc(fieldTypes, fieldNames)
	if err != nil {
		return primitives.InvalidTableID, err
	}

	file, err := heap.NewHeapFile(primitives.Filepath(path), td)
	if err != nil {
		return primitives.InvalidTableID, err
	}

	if err := tm.AddTable(file, name); err != nil {
		return primitives.InvalidTableID, err
	}
	return file.GetID(), nil
}

func insertRows(store *memory.PageStore, tm *memory.TableManager, tid *transaction.TransactionID, tableID primitives.TableID, rows [][]types.Field) error {
	td, err := tm.GetTupleDesc(tableID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		t := tuple.NewTuple(td)
		for i, field := range row {
			if err := t.SetField(i, field); err != nil {
				return err
			}
		}
		if err := store.InsertTuple(tid, tableID, t); err != nil {
			return err
		}
	}
	return nil
}

func printAll(title string, op iterator.DbIterator) error {
	if err := op.Open(); err != nil {
		return err
	}
	defer op.Close()

	fmt.Printf("-- %s\n", title)
	return iterator.ForEach(op, func(t *tuple.Tuple) error {
		fmt.Println(t.String())
		return nil
	})
}
