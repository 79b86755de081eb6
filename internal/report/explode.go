package report

import "strings"

// DefaultDelimiter separates multi-valued cells in the extract.
const DefaultDelimiter = ","

// Explode fans each row of t out into one row per delimiter-separated
// segment of nameCol, keeping every other column untouched.
//
//   - Segments are whitespace-trimmed; an empty segment becomes an explicit
//     null cell, so "A, B," yields three rows, the last with a null item.
//   - A null nameCol cell yields zero rows for that source row.
//   - When dateCol is non-empty its cell is split the same way and paired
//     with name segments strictly by position: missing date positions are
//     null, surplus date segments are discarded.
//
// Schema, column order, and relative row order are preserved; rows derived
// from one source row stay contiguous in segment order.
func Explode(t Table, nameCol, dateCol, delim string) Table {
	if delim == "" {
		delim = DefaultDelimiter
	}

	out := NewTable(t.Columns)
	for _, row := range t.Rows {
		names := splitPreserveBlanks(row.Get(nameCol), delim)
		if names == nil {
			continue
		}

		var dates []*string
		if dateCol != "" {
			dates = splitPreserveBlanks(row.Get(dateCol), delim)
		}

		for i, name := range names {
			exploded := row.Clone()
			exploded[nameCol] = name
			if dateCol != "" {
				if i < len(dates) {
					exploded[dateCol] = dates[i]
				} else {
					exploded[dateCol] = nil
				}
			}
			out.Rows = append(out.Rows, exploded)
		}
	}
	return out
}

// splitPreserveBlanks splits a cell into trimmed segments, mapping empty
// segments to null so blanks survive the split. A null cell returns nil.
func splitPreserveBlanks(cell *string, delim string) []*string {
	if cell == nil {
		return nil
	}
	parts := strings.Split(*cell, delim)
	out := make([]*string, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			out[i] = nil
		} else {
			out[i] = Ptr(p)
		}
	}
	return out
}
