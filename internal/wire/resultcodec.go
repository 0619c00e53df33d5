package wire

import (
	"strings"

	"github.com/chotchki/elephantcore/internal/engine/executor"
)

// encodeResult renders a Select result as tab-separated text, one
// header line of column names followed by one line per row. This
// stub has no client driver on the other end to negotiate a binary
// row description with, so plain text is the simplest payload that
// carries the same information the real wire protocol's RowDescription
// and DataRow messages would.
func encodeResult(res *executor.Result) []byte {
	var sb strings.Builder
	sb.WriteString(strings.Join(res.Columns, "\t"))
	sb.WriteByte('\n')
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			if v == nil {
				cells[i] = "NULL"
				continue
			}
			cells[i] = v.String()
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}
