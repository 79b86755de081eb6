package report

import "testing"

func TestBuildPivotCountsDistinctIDs(t *testing.T) {
	table := extractTable(
		employeeRow(Row{ColID: Ptr("1"), ColCourseCode: Ptr("A,B")}),
		employeeRow(Row{ColID: Ptr("1"), ColCourseCode: Ptr("C")}),
		employeeRow(Row{ColID: Ptr("2"), ColCourseCode: Ptr("A")}),
	)
	rows, err := BuildPivot(table, ColUnit)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected one (Unit A, Courses) row, got %+v", rows)
	}
	got := rows[0]
	if got.Dimension != "Unit A" || got.Category != "Courses" {
		t.Fatalf("unexpected group: %+v", got)
	}
	if got.Count != 2 {
		t.Fatalf("count = %d, want 2 distinct IDs (not 4 rows)", got.Count)
	}
}

func TestBuildPivotSkipsNullDimensionCells(t *testing.T) {
	table := extractTable(
		employeeRow(Row{ColUnit: nil, ColMealError: Ptr("Missed Break")}),
		employeeRow(Row{ColID: Ptr("000002"), ColMealError: Ptr("Late Meal")}),
	)
	rows, err := BuildPivot(table, ColUnit)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if len(rows) != 1 || rows[0].Count != 1 {
		t.Fatalf("null dimension cells must not group: %+v", rows)
	}
}

func TestBuildPivotOrdersByDimensionThenCategory(t *testing.T) {
	table := extractTable(
		employeeRow(Row{ColUnit: Ptr("Unit B"), ColMealError: Ptr("Missed Break")}),
		employeeRow(Row{ColUnit: Ptr("Unit A"), ColMealError: Ptr("Late Meal")}),
		employeeRow(Row{ColUnit: Ptr("Unit A"), ColChecklistItem: Ptr("CHK-1")}),
	)
	rows, err := BuildPivot(table, ColUnit)
	if err != nil {
		t.Fatalf("pivot: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 groups, got %+v", rows)
	}
	if rows[0].Dimension != "Unit A" || rows[0].Category != "Checklist" {
		t.Fatalf("first group wrong: %+v", rows[0])
	}
	if rows[1].Dimension != "Unit A" || rows[1].Category != "Meals" {
		t.Fatalf("second group wrong: %+v", rows[1])
	}
	if rows[2].Dimension != "Unit B" {
		t.Fatalf("third group wrong: %+v", rows[2])
	}
}

func TestBuildPivotRejectsUnknownDimension(t *testing.T) {
	if _, err := BuildPivot(extractTable(), "Supv Name"); err == nil {
		t.Fatalf("expected error for non-pivot column")
	}
}
