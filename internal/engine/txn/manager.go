package txn

import (
	"fmt"
	"sync"
)

// Manager is the engine's single transaction table: every xid it has
// ever handed out, each one's current status, and the set still in
// progress. One Manager is shared across every client connection.
type Manager struct {
	mu      sync.RWMutex
	nextXid TransactionId
	status  map[TransactionId]Status
	active  map[TransactionId]struct{}
}

// NewManager returns a Manager with xid allocation starting at 1.
func NewManager() *Manager {
	return &Manager{
		nextXid: 1,
		status:  make(map[TransactionId]Status),
		active:  make(map[TransactionId]struct{}),
	}
}

// Begin allocates a new xid, marks it InProgress, and adds it to the
// active set.
func (m *Manager) Begin() TransactionId {
	m.mu.Lock()
	defer m.mu.Unlock()
	xid := m.nextXid
	m.nextXid++
	m.status[xid] = InProgress
	m.active[xid] = struct{}{}
	return xid
}

// Commit marks xid Committed and removes it from the active set.
func (m *Manager) Commit(xid TransactionId) error {
	return m.finish(xid, Committed)
}

// Abort marks xid Aborted and removes it from the active set.
func (m *Manager) Abort(xid TransactionId) error {
	return m.finish(xid, Aborted)
}

func (m *Manager) finish(xid TransactionId, final Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.status[xid]
	if !ok {
		return ManagerError{fmt.Sprintf("unknown xid %d", uint64(xid))}
	}
	if st != InProgress {
		return ManagerError{fmt.Sprintf("xid %d already %s", uint64(xid), st)}
	}
	m.status[xid] = final
	delete(m.active, xid)
	return nil
}

// StatusOf returns xid's current status.
func (m *Manager) StatusOf(xid TransactionId) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.status[xid]
	if !ok {
		return 0, ManagerError{fmt.Sprintf("unknown xid %d", uint64(xid))}
	}
	return st, nil
}

// Snapshot captures the current visibility frontier: the lowest
// in-progress xid (or next_xid if nothing is in progress), the next
// xid to be allocated, and a copy of the active set.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	xmin := m.nextXid
	inProgress := make(map[TransactionId]struct{}, len(m.active))
	for xid := range m.active {
		inProgress[xid] = struct{}{}
		if xid < xmin {
			xmin = xid
		}
	}
	return Snapshot{
		Xmin:       xmin,
		Xmax:       m.nextXid,
		InProgress: inProgress,
	}
}

type ManagerError struct {
	Reason string
}

func (e ManagerError) Error() string { return "transaction manager error: " + e.Reason }
