package main

import (
	"encoding/csv"
	"io"

	"github.com/chotchki/elephantcore/internal/constants"
)

// csvRowWriter renders inspect's output as CSV instead of tab-separated
// text, the same header-then-rows shape pgdump's ToCSV used for table
// dumps.
type csvRowWriter struct {
	w *csv.Writer
}

func newCSVRowWriter(w io.Writer, header []string) (*csvRowWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, err
	}
	return &csvRowWriter{w: cw}, nil
}

func (c *csvRowWriter) writeRow(meta []string, values []constants.Value) error {
	record := make([]string, 0, len(meta)+len(values))
	record = append(record, meta...)
	for _, v := range values {
		record = append(record, formatCSVValue(v))
	}
	return c.w.Write(record)
}

func (c *csvRowWriter) flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatCSVValue(v constants.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
