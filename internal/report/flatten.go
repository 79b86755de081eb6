package report

// FlatTable is the rectangular unrolling of a Tree: one row per leaf date,
// or one row with a null date for items without dates. Every row carries a
// Count of 1; size-encoding renderers sum leaf counts upward ("total"
// semantics).
type FlatTable struct {
	// Columns is the hierarchy path plus the trailing Count column. The
	// Date column is present only when at least one row reached that depth.
	Columns []string
	Rows    []FlatRow
}

type FlatRow struct {
	Supervisor string
	Category   string
	Employee   string
	Item       string
	Date       *string
	Count      int
}

// Flatten unrolls the tree into a FlatTable. Rows of differing natural
// depth are padded with null dates so the result is rectangular; if no row
// in the tree has a date, the Date column is dropped from the schema.
func Flatten(tree Tree) FlatTable {
	var rows []FlatRow
	hasDate := false

	for _, cat := range tree.Categories {
		for _, emp := range cat.Employees {
			for _, item := range emp.Items {
				base := FlatRow{
					Supervisor: tree.Supervisor,
					Category:   cat.Category.String(),
					Employee:   emp.Name,
					Item:       item.Value,
					Count:      1,
				}
				if len(item.Dates) == 0 {
					rows = append(rows, base)
					continue
				}
				hasDate = true
				for _, date := range item.Dates {
					row := base
					row.Date = Ptr(date)
					rows = append(rows, row)
				}
			}
		}
	}

	columns := []string{"Supervisor", "Category", "Employee", "Name"}
	if hasDate {
		columns = append(columns, "Date")
	}
	columns = append(columns, "Count")
	return FlatTable{Columns: columns, Rows: rows}
}

// HasDate reports whether the Date column is part of the schema.
func (f FlatTable) HasDate() bool {
	for _, col := range f.Columns {
		if col == "Date" {
			return true
		}
	}
	return false
}
