package iterator

import "heapdb/pkg/tuple"

// Iterate drives the HasNext/Next loop, passing each tuple to processFunc.
// The callback returns false to stop early; nil tuples are skipped.
func Iterate(iter TupleIterator, processFunc func(*tuple.Tuple) (continueLooping bool, err error)) error {
	for {
		hasNext, err := iter.HasNext()
		if err != nil {
			return err
		}
		if !hasNext {
			break
		}

		tup, err := iter.Next()
		if err != nil {
			return err
		}
		if tup == nil {
			continue
		}

		shouldContinue, err := processFunc(tup)
		if err != nil {
			return err
		}
		if !shouldContinue {
			break
		}
	}

	return nil
}

// ForEach applies processFunc to every tuple in the iterator.
func ForEach(iter TupleIterator, processFunc func(*tuple.Tuple) error) error {
	return Iterate(iter, func(tup *tuple.Tuple) (bool, error) {
		err := processFunc(tup)
		return true, err
	})
}

// Collect returns all remaining tuples as a slice. This consumes the
// iterator and materializes everything in memory.
func Collect(iter TupleIterator) ([]*tuple.Tuple, error) {
	var results []*tuple.Tuple

	err := Iterate(iter, func(tup *tuple.Tuple) (bool, error) {
		results = append(results, tup)
		return true, nil
	})

	return results, err
}

// Count returns the number of remaining tuples, consuming the iterator.
func Count(iter TupleIterator) (int, error) {
	count := 0
	err := ForEach(iter, func(*tuple.Tuple) error {
		count++
		return nil
	})
	return count, err
}
