package txn

// Snapshot is the visibility frontier a statement observes, captured
// once at statement start and held for that statement's lifetime.
type Snapshot struct {
	// Xmin is the lowest xid that was still InProgress when the
	// snapshot was taken, or Xmax if nothing was in progress.
	Xmin TransactionId
	// Xmax is the next xid to be allocated at snapshot time; any xid
	// at or above this was assigned after the snapshot and is never
	// visible.
	Xmax TransactionId
	// InProgress is the set of xids that were InProgress at snapshot
	// time, copied so later commits/aborts don't change this snapshot's
	// view.
	InProgress map[TransactionId]struct{}
}

func (s Snapshot) isInProgress(xid TransactionId) bool {
	_, ok := s.InProgress[xid]
	return ok
}
