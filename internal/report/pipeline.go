package report

import (
	"errors"
	"fmt"
)

// ErrUnknownSupervisor is returned when a supervisor ID matches no rows of
// the extract. It is a user-visible empty-result condition, not a defect.
var ErrUnknownSupervisor = errors.New("no employees found for supervisor")

// FilterState is the per-session filter selection applied ahead of the
// pipeline. Nil slices mean "unrestricted"; an empty non-nil slice is a
// deliberate selection of nothing.
type FilterState struct {
	SupervisorID string
	EmployeeIDs  []string
	Units        []string
	Departments  []string
}

// Report bundles every output the rendering layer consumes for one filter
// state. Building it twice from identical inputs yields identical values.
type Report struct {
	Supervisor     string
	NoData         bool
	View           Table
	Sunburst       FlatTable
	Todo           []EmployeeTasks
	Pivot          []PivotRow
	PivotDimension string

	// Filter domains the UI offers for this supervisor, independent of the
	// current selection.
	AvailableIDs         []string
	AvailableUnits       []string
	AvailableDepartments []string
}

// ViewColumns is the fixed display subset for the tabular detail view.
func ViewColumns() []string {
	return []string{
		ColID, ColName, ColOCC, ColPayStatus, ColChecklistDescr,
		ColBriefStat, ColCourseName, ColLicCode, ColLicName, ColMealError,
	}
}

// BuildReport runs the whole pipeline: restrict the extract to the
// supervisor, apply the filter state, then derive the detail view, the
// compliance tree and its flat form, the to-do lists, and the pivot counts.
// The pipeline is pure; it never mutates t.
func BuildReport(t Table, fs FilterState, pivotDimension string) (*Report, error) {
	if pivotDimension == "" {
		pivotDimension = ColUnit
	}
	if !ValidPivotDimension(pivotDimension) {
		return nil, fmt.Errorf("unknown pivot dimension %q", pivotDimension)
	}

	supervised := t.Filter(func(r Row) bool {
		return r.Value(ColSupvID) == fs.SupervisorID
	})
	if supervised.Empty() {
		return nil, ErrUnknownSupervisor
	}
	supervisor := supervised.Rows[0].Value(ColSupvName)

	rep := &Report{
		Supervisor:           supervisor,
		PivotDimension:       pivotDimension,
		AvailableIDs:         supervised.DistinctValues(ColID),
		AvailableUnits:       supervised.DistinctValues(ColUnit),
		AvailableDepartments: supervised.DistinctValues(ColDept),
	}

	filtered := supervised.Filter(func(r Row) bool {
		return matchesSelection(r, ColID, fs.EmployeeIDs) &&
			matchesSelection(r, ColUnit, fs.Units) &&
			matchesSelection(r, ColDept, fs.Departments)
	})
	if filtered.Empty() {
		rep.NoData = true
		return rep, nil
	}

	rep.View = filtered.Select(ViewColumns())
	rep.Sunburst = Flatten(BuildTree(supervisor, filtered))
	rep.Todo = BuildTodo(filtered)

	pivot, err := BuildPivot(filtered, pivotDimension)
	if err != nil {
		return nil, err
	}
	rep.Pivot = pivot
	return rep, nil
}

func matchesSelection(r Row, col string, selected []string) bool {
	if selected == nil {
		return true
	}
	v := r.Get(col)
	if v == nil {
		return false
	}
	for _, s := range selected {
		if s == *v {
			return true
		}
	}
	return false
}
