package aggregation

import (
	"errors"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
)

// NoGrouping is passed as the group-by field index to merge every input
// row into a single group.
const NoGrouping = -1

// ErrUnsupportedAggregate is returned when an aggregator does not support
// the requested operation for its field type.
var ErrUnsupportedAggregate = errors.New("unsupported aggregate operation for field type")

// AggregateOp enumerates the supported aggregate operations.
type AggregateOp int

const (
	Min AggregateOp = iota
	Max
	Sum
	Avg
	Count
)

func (op AggregateOp) String() string {
	switch op {
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Count:
		return "COUNT"
	default:
		return "UNKNOWN"
	}
}

// Aggregator accumulates rows into per-group partial results. Merge is
// called once per input row; Iterator then produces one result tuple per
// group, in first-seen group order. Memory footprint is proportional to
// the number of distinct groups.
type Aggregator interface {
	Merge(t *tuple.Tuple) error

	Iterator() (iterator.DbIterator, error)

	GetTupleDesc() *tuple.TupleDescription
}
