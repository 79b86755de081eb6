package report

import (
	"bytes"
	"encoding/json"
	"testing"
)

func supervisedTable() Table {
	return extractTable(
		employeeRow(Row{
			ColID:          Ptr("000001"),
			ColName:        Ptr("Abel, Cy"),
			ColUnit:        Ptr("Unit A"),
			ColCourseCode:  Ptr("A,B"),
			ColCourseName:  Ptr("Food Handling,CPR"),
			ColCourseExpir: Ptr("2024-01-01,2024-06-01"),
		}),
		employeeRow(Row{
			ColID:        Ptr("000002"),
			ColName:      Ptr("Zeta, Bo"),
			ColUnit:      Ptr("Unit B"),
			ColMealError: Ptr("Missed Break"),
		}),
		employeeRow(Row{
			ColID:     Ptr("999999"),
			ColSupvID: Ptr("555555"),
			ColName:   Ptr("Other, Employee"),
		}),
	)
}

func TestBuildReportRestrictsToSupervisor(t *testing.T) {
	rep, err := BuildReport(supervisedTable(), FilterState{SupervisorID: "100200"}, "")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if rep.Supervisor != "Rivera, Sam" {
		t.Fatalf("supervisor = %q", rep.Supervisor)
	}
	if len(rep.AvailableIDs) != 2 {
		t.Fatalf("available IDs = %v, other supervisors' employees leaked in", rep.AvailableIDs)
	}
	if len(rep.View.Rows) != 2 {
		t.Fatalf("view rows = %d, want 2", len(rep.View.Rows))
	}
	if len(rep.View.Columns) != len(ViewColumns()) {
		t.Fatalf("view columns = %v", rep.View.Columns)
	}
	if rep.PivotDimension != ColUnit {
		t.Fatalf("default pivot dimension = %q, want %q", rep.PivotDimension, ColUnit)
	}
}

func TestBuildReportUnknownSupervisor(t *testing.T) {
	_, err := BuildReport(supervisedTable(), FilterState{SupervisorID: "000000"}, "")
	if err != ErrUnknownSupervisor {
		t.Fatalf("expected ErrUnknownSupervisor, got %v", err)
	}
}

func TestBuildReportAppliesFilterState(t *testing.T) {
	fs := FilterState{
		SupervisorID: "100200",
		EmployeeIDs:  []string{"000002"},
	}
	rep, err := BuildReport(supervisedTable(), fs, "")
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(rep.View.Rows) != 1 || rep.View.Rows[0].Value(ColID) != "000002" {
		t.Fatalf("employee filter not applied: %+v", rep.View.Rows)
	}
	if len(rep.Todo) != 1 || rep.Todo[0].Employee != "Bo Zeta" {
		t.Fatalf("todo should cover only the selected employee: %+v", rep.Todo)
	}
}

func TestBuildReportEmptySelectionIsNoData(t *testing.T) {
	fs := FilterState{
		SupervisorID: "100200",
		EmployeeIDs:  []string{},
	}
	rep, err := BuildReport(supervisedTable(), fs, "")
	if err != nil {
		t.Fatalf("empty selection must be recoverable, got %v", err)
	}
	if !rep.NoData {
		t.Fatalf("expected NoData flag")
	}
	if len(rep.AvailableIDs) == 0 {
		t.Fatalf("filter domains should survive a no-data selection")
	}
}

func TestBuildReportRejectsUnknownPivotDimension(t *testing.T) {
	if _, err := BuildReport(supervisedTable(), FilterState{SupervisorID: "100200"}, "Supv ID"); err == nil {
		t.Fatalf("expected pivot dimension error")
	}
}

func TestBuildReportIsDeterministic(t *testing.T) {
	table := supervisedTable()
	fs := FilterState{SupervisorID: "100200", Units: []string{"Unit A", "Unit B"}}

	first, err := BuildReport(table, fs, ColDept)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := BuildReport(table, fs, ColDept)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal first: %v", err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal second: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("reruns must be byte-identical:\n%s\n%s", a, b)
	}
}
