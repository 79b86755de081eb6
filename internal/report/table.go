package report

import (
	"sort"
	"strings"
)

// Column names of the compliance extract. The extract layer validates that
// every one of these is present before a Table reaches this package.
const (
	ColID             = "ID"
	ColSupvID         = "Supv ID"
	ColSupvName       = "Supv Name"
	ColName           = "Name"
	ColUnit           = "Unit"
	ColDept           = "Dept Name"
	ColMgrLevel       = "Mgr Level"
	ColJobTitle       = "Job Title"
	ColLocation       = "Location"
	ColFullPart       = "Full/Part"
	ColOCC            = "OCC"
	ColPayStatus      = "Pay Status"
	ColChecklistItem  = "Checklist Item"
	ColChecklistDescr = "Checklist Descr"
	ColBriefStat      = "Brief Stat"
	ColCourseCode     = "Course Code"
	ColCourseName     = "Course Name"
	ColCourseExpir    = "Course Expir Date"
	ColLicCode        = "Lic/Cert Code"
	ColLicName        = "Licensure/Cert Name"
	ColLicExpir       = "Lic/Cert Expir Date"
	ColMealError      = "Meal Error Type"
)

func RequiredColumns() []string {
	return []string{
		ColID, ColSupvID, ColSupvName, ColName, ColUnit, ColDept,
		ColMgrLevel, ColJobTitle, ColLocation, ColFullPart, ColOCC,
		ColPayStatus, ColChecklistItem, ColChecklistDescr, ColBriefStat,
		ColCourseCode, ColCourseName, ColCourseExpir, ColLicCode,
		ColLicName, ColLicExpir, ColMealError,
	}
}

// Table is a rectangular table with named, nullable string cells. Column
// order is significant and is preserved by every operation in this package.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row maps a column name to its cell. A nil pointer (or an absent key) is a
// null cell, distinct from a present-but-empty string.
type Row map[string]*string

func NewTable(columns []string) Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return Table{Columns: cols}
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Get returns the cell pointer for col, nil when the cell is null.
func (r Row) Get(col string) *string {
	return r[col]
}

// Value returns the cell text for col, with null reading as "".
func (r Row) Value(col string) string {
	if v := r[col]; v != nil {
		return *v
	}
	return ""
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Filter returns a new table holding the rows keep accepts, in order.
func (t Table) Filter(keep func(Row) bool) Table {
	out := NewTable(t.Columns)
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Select returns a table restricted to the named columns. Cells for columns
// absent from a row stay null.
func (t Table) Select(columns []string) Table {
	out := NewTable(columns)
	for _, row := range t.Rows {
		sub := make(Row, len(columns))
		for _, col := range columns {
			if v, ok := row[col]; ok {
				sub[col] = v
			}
		}
		out.Rows = append(out.Rows, sub)
	}
	return out
}

// DistinctValues returns the sorted distinct non-null values of col.
func (t Table) DistinctValues(col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows {
		v := row.Get(col)
		if v == nil {
			continue
		}
		if _, ok := seen[*v]; ok {
			continue
		}
		seen[*v] = struct{}{}
		out = append(out, *v)
	}
	sort.Strings(out)
	return out
}

// Ptr wraps a string into a non-null cell value.
func Ptr(s string) *string {
	return &s
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
