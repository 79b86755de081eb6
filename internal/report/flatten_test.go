package report

import "testing"

func TestFlattenEmitsOneRowPerDate(t *testing.T) {
	tree := Tree{
		Supervisor: "Rivera, Sam",
		Categories: []CategoryNode{{
			Category: Courses,
			Employees: []EmployeeNode{{
				Name: "Doe, Jan",
				Items: []ItemNode{
					{Value: "X", Dates: []string{"2024-01-01", "2024-06-01"}},
					{Value: "Y"},
				},
			}},
		}},
	}
	flat := Flatten(tree)

	if len(flat.Rows) != 3 {
		t.Fatalf("expected 3 rows (two dated + one undated), got %d", len(flat.Rows))
	}
	if !flat.HasDate() {
		t.Fatalf("schema should include Date: %v", flat.Columns)
	}
	if flat.Rows[0].Date == nil || *flat.Rows[0].Date != "2024-01-01" {
		t.Fatalf("first row date wrong: %+v", flat.Rows[0])
	}
	if flat.Rows[2].Date != nil {
		t.Fatalf("undated item row should carry a null date, got %+v", flat.Rows[2])
	}
	for i, row := range flat.Rows {
		if row.Count != 1 {
			t.Fatalf("row %d count = %d, want 1", i, row.Count)
		}
		if row.Supervisor != "Rivera, Sam" || row.Category != "Courses" || row.Employee != "Doe, Jan" {
			t.Fatalf("row %d lost its hierarchy prefix: %+v", i, row)
		}
	}
}

func TestFlattenDropsDateColumnWhenUnused(t *testing.T) {
	tree := Tree{
		Supervisor: "Rivera, Sam",
		Categories: []CategoryNode{{
			Category: Meals,
			Employees: []EmployeeNode{{
				Name:  "Doe, Jan",
				Items: []ItemNode{{Value: "Missed Break"}},
			}},
		}},
	}
	flat := Flatten(tree)

	if flat.HasDate() {
		t.Fatalf("schema should omit Date when no row uses it: %v", flat.Columns)
	}
	want := []string{"Supervisor", "Category", "Employee", "Name", "Count"}
	if len(flat.Columns) != len(want) {
		t.Fatalf("columns = %v, want %v", flat.Columns, want)
	}
	for i := range want {
		if flat.Columns[i] != want[i] {
			t.Fatalf("columns = %v, want %v", flat.Columns, want)
		}
	}
}

func TestFlattenEmptyTree(t *testing.T) {
	flat := Flatten(Tree{Supervisor: "Rivera, Sam"})
	if len(flat.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(flat.Rows))
	}
}
