package memory

import (
	"fmt"

	"heapdb/pkg/concurrency/transaction"
)

// TransactionAbortedError signals that the buffer pool could not grant a
// page request and the requesting transaction must abort. Operators never
// catch it; it propagates to the consumer, which closes the tree.
type TransactionAbortedError struct {
	TID    *transaction.TransactionID
	Reason string
}

func (e *TransactionAbortedError) Error() string {
	if e.TID == nil {
		return fmt.Sprintf("transaction aborted: %s", e.Reason)
	}
	return fmt.Sprintf("transaction %s aborted: %s", e.TID, e.Reason)
}
