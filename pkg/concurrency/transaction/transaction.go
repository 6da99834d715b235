package transaction

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID uniquely identifies a transaction. Pages remember the id of
// the transaction that dirtied them, and the buffer pool keys page access
// by it.
type TransactionID struct {
	id uuid.UUID
}

func NewTransactionID() *TransactionID {
	return &TransactionID{
		id: uuid.New(),
	}
}

func (tid *TransactionID) ID() uuid.UUID {
	return tid.id
}

func (tid *TransactionID) String() string {
	return fmt.Sprintf("TID-%s", tid.id.String())
}

func (tid *TransactionID) Equals(other *TransactionID) bool {
	if tid == nil || other == nil {
		return tid == other
	}
	return tid.id == other.id
}
