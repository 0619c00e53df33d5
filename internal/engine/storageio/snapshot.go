package storageio

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/chotchki/elephantcore/internal/engine/pageformats"
	"github.com/google/uuid"
)

// SnapshotTo writes every table's pages to w: for each table, its id
// (16 bytes), its page count (u32 LE), then each page's raw 4096
// bytes in page-number order. This is not a WAL or a durable storage
// format — there is no crash recovery here — it exists purely so the
// inspect command has real bytes to read from a process that has
// since exited.
func (m *IOManager) SnapshotTo(w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		if _, err := w.Write(id[:]); err != nil {
			return err
		}
		pages := m.tables[id]
		var countBuf [4]byte
		binary.LittleEndian.PutUint32(countBuf[:], uint32(len(pages)))
		if _, err := w.Write(countBuf[:]); err != nil {
			return err
		}
		for _, page := range pages {
			if _, err := w.Write(page[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadFrom reads a snapshot previously produced by SnapshotTo into a
// fresh IOManager.
func LoadFrom(r io.Reader) (*IOManager, error) {
	m := NewIOManager()
	for {
		var id uuid.UUID
		_, err := io.ReadFull(r, id[:])
		if err == io.EOF {
			return m, nil
		}
		if err != nil {
			return nil, fmt.Errorf("storageio: reading table id: %w", err)
		}

		var countBuf [4]byte
		if _, err := io.ReadFull(r, countBuf[:]); err != nil {
			return nil, fmt.Errorf("storageio: reading page count: %w", err)
		}
		count := binary.LittleEndian.Uint32(countBuf[:])

		pages := make([][pageformats.PageSize]byte, count)
		for i := range pages {
			if _, err := io.ReadFull(r, pages[i][:]); err != nil {
				return nil, fmt.Errorf("storageio: reading page %d of table %s: %w", i, id, err)
			}
		}
		m.tables[id] = pages
	}
}
