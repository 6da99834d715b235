package heap

import "errors"

var (
	// ErrSchemaMismatch is returned when a tuple's descriptor differs from
	// the page or file schema.
	ErrSchemaMismatch = errors.New("tuple schema does not match page schema")

	// ErrPageFull is returned by InsertTuple when no empty slot exists.
	ErrPageFull = errors.New("no empty slot available on page")

	// ErrSlotEmpty is returned by DeleteTuple when the target slot bit is
	// already clear.
	ErrSlotEmpty = errors.New("slot is already empty")

	// ErrNotOnPage is returned when a tuple's record id is missing or
	// refers to a different page.
	ErrNotOnPage = errors.New("tuple is not on this page")
)
