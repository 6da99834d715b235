package join

import (
	"fmt"

	"heapdb/pkg/primitives"
	"heapdb/pkg/tuple"
)

// JoinPredicate compares a field of a left tuple against a field of a
// right tuple. The Join operator uses it to decide which pairs to emit.
type JoinPredicate struct {
	field1 int
	field2 int
	op     primitives.Predicate
}

func NewJoinPredicate(field1, field2 int, op primitives.Predicate) (*JoinPredicate, error) {
	if field1 < 0 {
		return nil, fmt.Errorf("field1 index cannot be negative: %d", field1)
	}
	if field2 < 0 {
		return nil, fmt.Errorf("field2 index cannot be negative: %d", field2)
	}

	return &JoinPredicate{
		field1: field1,
		field2: field2,
		op:     op,
	}, nil
}

// Filter evaluates `t1.field(field1) op t2.field(field2)`.
func (jp *JoinPredicate) Filter(t1, t2 *tuple.Tuple) (bool, error) {
	if t1 == nil || t2 == nil {
		return false, fmt.Errorf("tuples cannot be nil")
	}

	field1, err := t1.GetField(jp.field1)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d from left tuple: %w", jp.field1, err)
	}

	field2, err := t2.GetField(jp.field2)
	if err != nil {
		return false, fmt.Errorf("failed to get field %d from right tuple: %w", jp.field2, err)
	}

	if field1 == nil || field2 == nil {
		return false, nil
	}

	return field1.Compare(jp.op, field2)
}

func (jp *JoinPredicate) Field1() int {
	return jp.field1
}

func (jp *JoinPredicate) Field2() int {
	return jp.field2
}

func (jp *JoinPredicate) Operation() primitives.Predicate {
	return jp.op
}

func (jp *JoinPredicate) String() string {
	return fmt.Sprintf("left[%d] %s right[%d]", jp.field1, jp.op, jp.field2)
}
