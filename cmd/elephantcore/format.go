package main

import (
	"fmt"
	"strings"

	"github.com/chotchki/elephantcore/internal/engine/objects"
	"github.com/chotchki/elephantcore/internal/engine/rowformats"
)

func attributeNames(attrs []objects.Attribute) []string {
	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.Name
	}
	return names
}

// rowMeta renders a row's transaction and location bookkeeping as the
// leading columns shared by both inspect output formats.
func rowMeta(row *rowformats.RowData) []string {
	return []string{
		fmt.Sprintf("%d", uint64(row.Min)),
		fmt.Sprintf("%d", uint64(row.Max)),
		fmt.Sprintf("%d", row.ItemPointer.PageNumber),
		fmt.Sprintf("%d", row.ItemPointer.Slot.ToInt()),
	}
}

func tabJoin(fields []string) string {
	return strings.Join(fields, "\t")
}
