package aggregation

import (
	"fmt"
	"sync"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// StringAggregator accumulates COUNT over a string field, optionally
// grouped by another field. COUNT is the only operation defined for
// strings; any other operation is rejected at construction.
type StringAggregator struct {
	gbField     int
	gbFieldType types.Type
	aField      int
	op          AggregateOp

	mutex       sync.RWMutex
	groupKeys   []string
	groupFields map[string]types.Field
	counts      map[string]int32

	tupleDesc *tuple.TupleDescription
}

func NewStringAggregator(gbField int, gbFieldType types.Type, aField int, op AggregateOp) (*StringAggregator, error) {
	if op != Count {
		return nil, fmt.Errorf("%w: %s on string field", ErrUnsupportedAggregate, op)
	}

	agg := &StringAggregator{
		gbField:     gbField,
		gbFieldType: gbFieldType,
		aField:      aField,
		op:          op,
		groupFields: make(map[string]types.Field),
		counts:      make(map[string]int32),
	}

	td, err := resultTupleDesc(gbField, gbFieldType, types.IntType, op)
	if err != nil {
		return nil, err
	}
	agg.tupleDesc = td
	return agg, nil
}

func (sa *StringAggregator) GetTupleDesc() *tuple.TupleDescription {
	return sa.tupleDesc
}

// Merge counts one input row into its group.
func (sa *StringAggregator) Merge(tup *tuple.Tuple) error {
	sa.mutex.Lock()
	defer sa.mutex.Unlock()

	groupKey, groupField, err := extractGroup(tup, sa.gbField)
	if err != nil {
		return err
	}

	aggField, err := tup.GetField(sa.aField)
	if err != nil {
		return fmt.Errorf("failed to get aggregate field: %w", err)
	}

	if _, ok := aggField.(*types.StringField); !ok {
		return fmt.Errorf("aggregate field is not a string")
	}

	if _, exists := sa.counts[groupKey]; !exists {
		sa.groupKeys = append(sa.groupKeys, groupKey)
		sa.groupFields[groupKey] = groupField
	}

	sa.counts[groupKey]++
	return nil
}

// Iterator returns the per-group counts in first-seen group order.
func (sa *StringAggregator) Iterator() (iterator.DbIterator, error) {
	sa.mutex.RLock()
	defer sa.mutex.RUnlock()

	results := make([]*tuple.Tuple, 0, len(sa.groupKeys))
	for _, groupKey := range sa.groupKeys {
		result, err := buildResultTuple(sa.tupleDesc, sa.gbField, sa.groupFields[groupKey],
			types.NewIntField(sa.counts[groupKey]))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return iterator.NewTupleListIterator(sa.tupleDesc, results)
}
