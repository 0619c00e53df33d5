// Package storageio implements the page store and the row-level
// operations (insert/delete/update/get/stream) built on top of it,
// including the visibility-filtered view used by query execution.
package storageio

import (
	"fmt"
	"sync"

	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/google/uuid"
)

// IOManager is the in-memory page store: for every table, an ordered
// sequence of 4 KiB pages indexed by page number. A single writer
// lock covers mutations across every table; readers take the shared
// lock and see a snapshot of the page map, though individual page
// bytes may be re-read on every call.
type IOManager struct {
	mu     sync.RWMutex
	tables map[uuid.UUID][][pageformats.PageSize]byte
}

func NewIOManager() *IOManager {
	return &IOManager{tables: make(map[uuid.UUID][][pageformats.PageSize]byte)}
}

// GetPage returns the raw bytes of one page, or NonExistentPage if
// pageNum is out of range for table.
func (m *IOManager) GetPage(table uuid.UUID, pageNum uint32) ([pageformats.PageSize]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pages := m.tables[table]
	if int(pageNum) >= len(pages) {
		return [pageformats.PageSize]byte{}, NonExistentPageError{Table: table, PageNum: pageNum}
	}
	return pages[pageNum], nil
}

// AddPage appends a new page for table and returns its page number.
func (m *IOManager) AddPage(table uuid.UUID, bytes [pageformats.PageSize]byte) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := m.tables[table]
	pages = append(pages, bytes)
	m.tables[table] = pages
	return uint32(len(pages) - 1)
}

// UpdatePage overwrites an existing page in place.
func (m *IOManager) UpdatePage(table uuid.UUID, bytes [pageformats.PageSize]byte, pageNum uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := m.tables[table]
	if int(pageNum) >= len(pages) {
		return NonExistentPageError{Table: table, PageNum: pageNum}
	}
	pages[pageNum] = bytes
	return nil
}

// PageCount returns the number of pages currently stored for table.
func (m *IOManager) PageCount(table uuid.UUID) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables[table])
}

// Stream calls fn for every page belonging to table in ascending
// page-number order, stopping early if fn returns an error.
func (m *IOManager) Stream(table uuid.UUID, fn func(pageNum uint32, bytes [pageformats.PageSize]byte) error) error {
	count := m.PageCount(table)
	for i := 0; i < count; i++ {
		bytes, err := m.GetPage(table, uint32(i))
		if err != nil {
			return err
		}
		if err := fn(uint32(i), bytes); err != nil {
			return err
		}
	}
	return nil
}

type NonExistentPageError struct {
	Table   uuid.UUID
	PageNum uint32
}

func (e NonExistentPageError) Error() string {
	return fmt.Sprintf("no page %d for table %s", e.PageNum, e.Table)
}
