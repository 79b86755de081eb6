package report

// Test fixtures shared across the package tests.

func extractTable(rows ...Row) Table {
	t := NewTable(RequiredColumns())
	t.Rows = append(t.Rows, rows...)
	return t
}

// employeeRow builds one extract row with sensible defaults, overridden by
// cells.
func employeeRow(cells Row) Row {
	row := Row{
		ColID:       Ptr("000001"),
		ColSupvID:   Ptr("100200"),
		ColSupvName: Ptr("Rivera, Sam"),
		ColName:     Ptr("Doe, Jan"),
		ColUnit:     Ptr("Unit A"),
		ColDept:     Ptr("Nursing"),
	}
	for k, v := range cells {
		row[k] = v
	}
	return row
}
