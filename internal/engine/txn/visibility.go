package txn

// Visible applies the MVCC visibility predicate: a row with the given
// min/max xid is visible under snapshot s if and only if:
//
//  1. minXid is Committed, minXid < s.Xmax, and minXid is not in
//     s.InProgress (the inserting transaction finished before the
//     snapshot was taken and wasn't itself in flight at that moment).
//  2. maxXid is none, or maxXid is Aborted, or maxXid >= s.Xmax, or
//     maxXid is in s.InProgress (the row hasn't been deleted yet, as
//     far as this snapshot can tell).
//
// statusOf resolves a xid's current status; it is the Manager's
// StatusOf, threaded in so this stays a pure function of its inputs.
func Visible(minXid, maxXid TransactionId, s Snapshot, statusOf func(TransactionId) (Status, error)) (bool, error) {
	minStatus, err := statusOf(minXid)
	if err != nil {
		return false, err
	}
	if minStatus != Committed {
		return false, nil
	}
	if !(minXid < s.Xmax) || s.isInProgress(minXid) {
		return false, nil
	}

	if maxXid.IsNone() {
		return true, nil
	}
	maxStatus, err := statusOf(maxXid)
	if err != nil {
		return false, err
	}
	if maxStatus == Aborted {
		return true, nil
	}
	if maxXid >= s.Xmax || s.isInProgress(maxXid) {
		return true, nil
	}
	return false, nil
}
