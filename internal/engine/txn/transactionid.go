// Package txn implements the transaction manager and the visibility
// predicate rows are filtered through: transaction ids, their status,
// and the snapshot a statement observes.
package txn

import "fmt"

// TransactionId is a monotonic counter starting at 1. Zero is the
// sentinel "none/unset" — it is never assigned to a real transaction.
type TransactionId uint64

// NoTransactionId is the sentinel stored in a row's max_xid when the
// row has never been deleted or updated.
const NoTransactionId TransactionId = 0

func (x TransactionId) IsNone() bool { return x == NoTransactionId }

func (x TransactionId) String() string {
	if x.IsNone() {
		return "xid(none)"
	}
	return fmt.Sprintf("xid(%d)", uint64(x))
}

type TransactionIdError struct {
	Reason string
}

func (e TransactionIdError) Error() string { return "transaction id error: " + e.Reason }
