package report

import "fmt"

// Category is the closed set of compliance categories. Declaration order is
// the iteration order everywhere downstream (sunburst rings, pivot
// stacking, to-do grouping), so it must not change casually.
type Category int

const (
	Checklist Category = iota
	Courses
	Licenses
	Meals
)

func Categories() []Category {
	return []Category{Checklist, Courses, Licenses, Meals}
}

func (c Category) String() string {
	switch c {
	case Checklist:
		return "Checklist"
	case Courses:
		return "Courses"
	case Licenses:
		return "Licenses"
	case Meals:
		return "Meals"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Descriptor names the extract column holding a category's item values and,
// when the category has a date dimension, the column holding its dates.
type Descriptor struct {
	ItemColumn string
	DateColumn string // "" when the category has no date dimension
}

func (d Descriptor) HasDate() bool {
	return d.DateColumn != ""
}

// Terse returns the short-label (code) columns for the category, used for
// the sunburst and pivot views.
func (c Category) Terse() Descriptor {
	switch c {
	case Checklist:
		return Descriptor{ItemColumn: ColChecklistItem}
	case Courses:
		return Descriptor{ItemColumn: ColCourseCode, DateColumn: ColCourseExpir}
	case Licenses:
		return Descriptor{ItemColumn: ColLicCode, DateColumn: ColLicExpir}
	case Meals:
		return Descriptor{ItemColumn: ColMealError}
	}
	panic(fmt.Sprintf("unknown category %d", int(c)))
}

// Verbose returns the human-readable columns for the category, used for the
// to-do list.
func (c Category) Verbose() Descriptor {
	switch c {
	case Checklist:
		return Descriptor{ItemColumn: ColChecklistDescr}
	case Courses:
		return Descriptor{ItemColumn: ColCourseName, DateColumn: ColCourseExpir}
	case Licenses:
		return Descriptor{ItemColumn: ColLicName, DateColumn: ColLicExpir}
	case Meals:
		return Descriptor{ItemColumn: ColMealError}
	}
	panic(fmt.Sprintf("unknown category %d", int(c)))
}

// missingRecordMarker flags items that are sentinels for an absent
// prerequisite record rather than real compliance items; their text is
// emitted verbatim instead of being wrapped in a task template.
const missingRecordMarker = "does not exist"

// TaskText renders one to-do sentence for an item in this category.
func (c Category) TaskText(item string, date *string) string {
	if containsFold(item, missingRecordMarker) {
		return item
	}
	switch c {
	case Checklist:
		text := fmt.Sprintf("is due for checklist item '%s'", item)
		if date != nil {
			text += fmt.Sprintf(" which expires %s", *date)
		}
		return text
	case Courses:
		text := fmt.Sprintf("must complete course '%s'", item)
		if date != nil {
			text += fmt.Sprintf(" by %s", *date)
		}
		return text
	case Licenses:
		text := fmt.Sprintf("needs to renew license/certification '%s'", item)
		if date != nil {
			text += fmt.Sprintf(" by %s", *date)
		}
		return text
	case Meals:
		return fmt.Sprintf("has a recorded meal issue: %s", item)
	}
	panic(fmt.Sprintf("unknown category %d", int(c)))
}
