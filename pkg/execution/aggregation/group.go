package aggregation

import (
	"fmt"

	"heapdb/pkg/tuple"
	"heapdb/pkg/types"
)

// noGroupKey is the single map key used when aggregating without grouping.
const noGroupKey = ""

// extractGroup determines the group an input row belongs to. Grouping is
// by field-value equality; the field's canonical string form keys the
// accumulator maps and the field itself is retained for the output row.
func extractGroup(tup *tuple.Tuple, gbField int) (string, types.Field, error) {
	if gbField == NoGrouping {
		return noGroupKey, nil, nil
	}

	groupField, err := tup.GetField(gbField)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get grouping field: %w", err)
	}
	if groupField == nil {
		return "", nil, fmt.Errorf("grouping field %d is not set", gbField)
	}

	return groupField.Type().String() + ":" + groupField.String(), groupField, nil
}

// resultTupleDesc builds the schema of the aggregation result: a single
// aggregate column, or a group column followed by the aggregate column.
func resultTupleDesc(gbField int, gbFieldType types.Type, resultType types.Type, op AggregateOp) (*tuple.TupleDescription, error) {
	if gbField == NoGrouping {
		return tuple.NewTupleDesc(
			[]types.Type{resultType},
			[]string{op.String()},
		)
	}

	return tuple.NewTupleDesc(
		[]types.Type{gbFieldType, resultType},
		[]string{"group", op.String()},
	)
}

// buildResultTuple assembles one output row for a group.
func buildResultTuple(td *tuple.TupleDescription, gbField int, groupField, aggregateField types.Field) (*tuple.Tuple, error) {
	result := tuple.NewTuple(td)

	if gbField == NoGrouping {
		if err := result.SetField(0, aggregateField); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := result.SetField(0, groupField); err != nil {
		return nil, err
	}
	if err := result.SetField(1, aggregateField); err != nil {
		return nil, err
	}
	return result, nil
}
