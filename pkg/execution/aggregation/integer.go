package aggregation

import (
	"fmt"
	"math"
	"sync"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// IntegerAggregator accumulates MIN, MAX, SUM, AVG and COUNT over an
// integer field, optionally grouped by another field.
//
// Accumulators are int32, matching the field width: SUM and AVG wrap
// silently on overflow. AVG is the truncated integer division of the
// group's sum by its count.
type IntegerAggregator struct {
	gbField     int
	gbFieldType types.Type
	aField      int
	op          AggregateOp

	mutex       sync.RWMutex
	groupKeys   []string
	groupFields map[string]types.Field
	aggregates  map[string]int32
	counts      map[string]int32

	tupleDesc *tuple.TupleDescription
}

func NewIntegerAggregator(gbField int, gbFieldType types.Type, aField int, op AggregateOp) (*IntegerAggregator, error) {
	switch op {
	case Min, Max, Sum, Avg, Count:
	default:
		return nil, fmt.Errorf("%w: %s on integer field", ErrUnsupportedAggregate, op)
	}

	agg := &IntegerAggregator{
		gbField:     gbField,
		gbFieldType: gbFieldType,
		aField:      aField,
		op:          op,
		groupFields: make(map[string]types.Field),
		aggregates:  make(map[string]int32),
		counts:      make(map[string]int32),
	}

	td, err := resultTupleDesc(gbField, gbFieldType, types.IntType, op)
	if err != nil {
		return nil, err
	}
	agg.tupleDesc = td
	return agg, nil
}

func (ia *IntegerAggregator) GetTupleDesc() *tuple.TupleDescription {
	return ia.tupleDesc
}

// Merge folds one input row into its group's accumulator.
func (ia *IntegerAggregator) Merge(tup *tuple.Tuple) error {
	ia.mutex.Lock()
	defer ia.mutex.Unlock()

	groupKey, groupField, err := extractGroup(tup, ia.gbField)
	if err != nil {
		return err
	}

	aggField, err := tup.GetField(ia.aField)
	if err != nil {
		return fmt.Errorf("failed to get aggregate field: %w", err)
	}

	intField, ok := aggField.(*types.IntField)
	if !ok {
		return fmt.Errorf("aggregate field is not an integer")
	}

	if _, exists := ia.counts[groupKey]; !exists {
		ia.groupKeys = append(ia.groupKeys, groupKey)
		ia.groupFields[groupKey] = groupField
		ia.aggregates[groupKey] = ia.initValue()
	}

	value := intField.Value
	switch ia.op {
	case Min:
		if value < ia.aggregates[groupKey] {
			ia.aggregates[groupKey] = value
		}
	case Max:
		if value > ia.aggregates[groupKey] {
			ia.aggregates[groupKey] = value
		}
	case Sum, Avg:
		ia.aggregates[groupKey] += value
	case Count:
		ia.aggregates[groupKey]++
	}

	ia.counts[groupKey]++
	return nil
}

// initValue returns the identity element for the operation: the int32
// extrema sentinels for MIN and MAX, zero otherwise.
func (ia *IntegerAggregator) initValue() int32 {
	switch ia.op {
	case Min:
		return math.MaxInt32
	case Max:
		return math.MinInt32
	default:
		return 0
	}
}

func (ia *IntegerAggregator) finalValue(groupKey string) int32 {
	if ia.op == Avg {
		return ia.aggregates[groupKey] / ia.counts[groupKey]
	}
	return ia.aggregates[groupKey]
}

// Iterator returns the per-group results in first-seen group order.
func (ia *IntegerAggregator) Iterator() (iterator.DbIterator, error) {
	ia.mutex.RLock()
	defer ia.mutex.RUnlock()

	results := make([]*tuple.Tuple, 0, len(ia.groupKeys))
	for _, groupKey := range ia.groupKeys {
		result, err := buildResultTuple(ia.tupleDesc, ia.gbField, ia.groupFields[groupKey],
			types.NewIntField(ia.finalValue(groupKey)))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return iterator.NewTupleListIterator(ia.tupleDesc, results)
}
