package main

import (
	"fmt"
	"strconv"
	"strings"
)

// pageRange restricts inspect's output to a span of page numbers, the
// same "start:end" / "start:" / ":end" / "n" syntax pgdump's block
// ranges used for raw file offsets, reinterpreted here against the
// page numbers an ItemPointer already carries.
type pageRange struct {
	start int64 // -1 means from the first page
	end   int64 // -1 means through the last page
}

func parsePageRange(s string) (*pageRange, error) {
	if s == "" {
		return nil, nil
	}

	pr := &pageRange{start: -1, end: -1}

	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)

		if parts[0] != "" {
			start, err := strconv.ParseInt(parts[0], 10, 64)
			if err != nil || start < 0 {
				return nil, fmt.Errorf("invalid start page: %s", parts[0])
			}
			pr.start = start
		}
		if parts[1] != "" {
			end, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil || end < 0 {
				return nil, fmt.Errorf("invalid end page: %s", parts[1])
			}
			pr.end = end
		}
	} else {
		page, err := strconv.ParseInt(s, 10, 64)
		if err != nil || page < 0 {
			return nil, fmt.Errorf("invalid page number: %s", s)
		}
		pr.start = page
		pr.end = page
	}

	if pr.start >= 0 && pr.end >= 0 && pr.start > pr.end {
		return nil, fmt.Errorf("start page (%d) cannot be greater than end page (%d)", pr.start, pr.end)
	}
	return pr, nil
}

func (pr *pageRange) includes(page uint32) bool {
	if pr == nil {
		return true
	}
	if pr.start >= 0 && int64(page) < pr.start {
		return false
	}
	if pr.end >= 0 && int64(page) > pr.end {
		return false
	}
	return true
}
