package report

import (
	"fmt"
	"sort"
)

// PivotRow counts the distinct employee IDs seen for one (dimension value,
// category) pair.
type PivotRow struct {
	Dimension string
	Category  string
	Count     int
}

// PivotDimensions is the closed set of columns the stacked-bar view may
// pivot on.
func PivotDimensions() []string {
	return []string{ColUnit, ColMgrLevel, ColDept, ColJobTitle, ColLocation, ColFullPart}
}

func ValidPivotDimension(dimension string) bool {
	for _, d := range PivotDimensions() {
		if d == dimension {
			return true
		}
	}
	return false
}

// BuildPivot explodes the filtered table per category and counts distinct
// employee IDs per (dimension value, category). Rows with a null dimension
// cell are excluded from grouping. Output is sorted by dimension value,
// then category.
func BuildPivot(filtered Table, dimension string) ([]PivotRow, error) {
	if !ValidPivotDimension(dimension) {
		return nil, fmt.Errorf("unknown pivot dimension %q", dimension)
	}

	type key struct {
		dimension string
		category  string
	}
	ids := make(map[key]map[string]struct{})

	for _, category := range Categories() {
		desc := category.Terse()
		exploded := Explode(filtered, desc.ItemColumn, desc.DateColumn, DefaultDelimiter)
		for _, row := range exploded.Rows {
			dim := row.Get(dimension)
			if dim == nil {
				continue
			}
			k := key{dimension: *dim, category: category.String()}
			if ids[k] == nil {
				ids[k] = make(map[string]struct{})
			}
			ids[k][row.Value(ColID)] = struct{}{}
		}
	}

	out := make([]PivotRow, 0, len(ids))
	for k, employeeIDs := range ids {
		out = append(out, PivotRow{
			Dimension: k.dimension,
			Category:  k.category,
			Count:     len(employeeIDs),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dimension != out[j].Dimension {
			return out[i].Dimension < out[j].Dimension
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}
