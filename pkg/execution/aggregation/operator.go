package aggregation

import (
	"fmt"

	"heapdb/pkg/iterator"
	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// Aggregate is the grouped-aggregation operator. Evaluation is strictly
// two-phase and blocking: Open consumes the entire child, feeding every
// row into an Aggregator, then iteration drains the per-group results.
type Aggregate struct {
	base  *iterator.BaseIterator
	child iterator.DbIterator

	aField int
	gField int
	op     AggregateOp

	aggregator Aggregator
	resultIter iterator.DbIterator
}

// NewAggregate builds the operator, choosing the aggregator implementation
// from the aggregate field's type. Operations a type does not support are
// rejected here.
func NewAggregate(child iterator.DbIterator, aField, gField int, op AggregateOp) (*Aggregate, error) {
	if child == nil {
		return nil, fmt.Errorf("child operator cannot be nil")
	}

	a := &Aggregate{
		child:  child,
		aField: aField,
		gField: gField,
		op:     op,
	}

	aggregator, err := a.buildAggregator()
	if err != nil {
		return nil, err
	}
	a.aggregator = aggregator

	a.base = iterator.NewBaseIterator(a.readNext)
	return a, nil
}

func (a *Aggregate) buildAggregator() (Aggregator, error) {
	childTd := a.child.GetTupleDesc()

	aFieldType, err := childTd.TypeAtIndex(a.aField)
	if err != nil {
		return nil, fmt.Errorf("invalid aggregate field %d: %w", a.aField, err)
	}

	var gFieldType types.Type
	if a.gField != NoGrouping {
		gFieldType, err = childTd.TypeAtIndex(a.gField)
		if err != nil {
			return nil, fmt.Errorf("invalid group field %d: %w", a.gField, err)
		}
	}

	switch aFieldType {
	case types.IntType:
		return NewIntegerAggregator(a.gField, gFieldType, a.aField, a.op)
	case types.StringType:
		return NewStringAggregator(a.gField, gFieldType, a.aField, a.op)
	default:
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedAggregate, a.op, aFieldType)
	}
}

func (a *Aggregate) readNext() (*tuple.Tuple, error) {
	if a.resultIter == nil {
		return nil, nil
	}

	hasNext, err := a.resultIter.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, nil
	}

	return a.resultIter.Next()
}

// Open opens the child, consumes it entirely into the aggregator, obtains
// the result iterator and marks this operator ready.
func (a *Aggregate) Open() error {
	if err := a.child.Open(); err != nil {
		return err
	}

	if err := iterator.ForEach(a.child, a.aggregator.Merge); err != nil {
		return err
	}

	resultIter, err := a.aggregator.Iterator()
	if err != nil {
		return err
	}

	a.resultIter = resultIter
	if err := a.resultIter.Open(); err != nil {
		return err
	}

	a.base.MarkOpened()
	return nil
}

// Close marks this operator closed, then releases the result iterator and
// the child.
func (a *Aggregate) Close() error {
	if err := a.base.Close(); err != nil {
		return err
	}

	if a.resultIter != nil {
		if err := a.resultIter.Close(); err != nil {
			return err
		}
		a.resultIter = nil
	}

	return a.child.Close()
}

// Rewind restarts the result iteration. The aggregation itself is not
// recomputed; the input was fully consumed at Open.
func (a *Aggregate) Rewind() error {
	if a.resultIter == nil {
		return iterator.ErrNotOpened
	}

	if err := a.resultIter.Rewind(); err != nil {
		return err
	}

	a.base.ClearCache()
	return nil
}

func (a *Aggregate) HasNext() (bool, error) {
	return a.base.HasNext()
}

func (a *Aggregate) Next() (*tuple.Tuple, error) {
	return a.base.Next()
}

// GetTupleDesc returns the named result schema: a single column
// `OP(fieldName)`, or the group column followed by it.
func (a *Aggregate) GetTupleDesc() *tuple.TupleDescription {
	childTd := a.child.GetTupleDesc()

	aName, _ := childTd.GetFieldName(a.aField)
	aggName := fmt.Sprintf("%s(%s)", a.op, aName)

	if a.gField == NoGrouping {
		td, _ := tuple.NewTupleDesc([]types.Type{types.IntType}, []string{aggName})
		return td
	}

	gType, _ := childTd.TypeAtIndex(a.gField)
	gName, _ := childTd.GetFieldName(a.gField)
	td, _ := tuple.NewTupleDesc([]types.Type{gType, types.IntType}, []string{gName, aggName})
	return td
}

func (a *Aggregate) GroupField() int {
	return a.gField
}

func (a *Aggregate) AggregateField() int {
	return a.aField
}

func (a *Aggregate) Op() AggregateOp {
	return a.op
}

func (a *Aggregate) GetChildren() []iterator.DbIterator {
	return []iterator.DbIterator{a.child}
}

// SetChildren replaces the child and rebuilds the aggregator against the
// new child's schema.
func (a *Aggregate) SetChildren(children []iterator.DbIterator) error {
	if len(children) != 1 {
		return fmt.Errorf("aggregate expects exactly 1 child, got %d", len(children))
	}

	a.child = children[0]
	aggregator, err := a.buildAggregator()
	if err != nil {
		return err
	}
	a.aggregator = aggregator
	a.resultIter = nil
	return nil
}
