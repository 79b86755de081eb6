package report

import "sort"

// Tree is the nested compliance aggregation driving the sunburst:
// supervisor -> category -> employee -> item -> dates. All levels are
// ordered slices so a rebuilt tree from identical input is identical.
type Tree struct {
	Supervisor string
	Categories []CategoryNode
}

type CategoryNode struct {
	Category  Category
	Employees []EmployeeNode
}

type EmployeeNode struct {
	Name  string
	Items []ItemNode
}

// ItemNode holds one distinct item value and the distinct dates observed
// for it. Dates is nil both for categories without a date dimension and
// when no non-null date was present.
type ItemNode struct {
	Value string
	Dates []string
}

// BuildTree explodes the filtered table once per category (terse columns)
// and folds the result into a Tree. Categories yielding no employees are
// omitted entirely; employees are ordered by name, items and dates by first
// appearance.
func BuildTree(supervisor string, filtered Table) Tree {
	tree := Tree{Supervisor: supervisor}

	for _, category := range Categories() {
		desc := category.Terse()
		exploded := Explode(filtered, desc.ItemColumn, desc.DateColumn, DefaultDelimiter)
		if exploded.Empty() {
			continue
		}

		node := buildCategoryNode(category, desc, exploded)
		if len(node.Employees) > 0 {
			tree.Categories = append(tree.Categories, node)
		}
	}
	return tree
}

func buildCategoryNode(category Category, desc Descriptor, exploded Table) CategoryNode {
	byEmployee := make(map[string][]Row)
	var employees []string
	for _, row := range exploded.Rows {
		name := row.Get(ColName)
		if name == nil {
			continue
		}
		if _, ok := byEmployee[*name]; !ok {
			employees = append(employees, *name)
		}
		byEmployee[*name] = append(byEmployee[*name], row)
	}
	sort.Strings(employees)

	node := CategoryNode{Category: category}
	for _, employee := range employees {
		emp := buildEmployeeNode(employee, desc, byEmployee[employee])
		if len(emp.Items) > 0 {
			node.Employees = append(node.Employees, emp)
		}
	}
	return node
}

func buildEmployeeNode(name string, desc Descriptor, rows []Row) EmployeeNode {
	emp := EmployeeNode{Name: name}
	seen := make(map[string]int)
	for _, row := range rows {
		item := row.Get(desc.ItemColumn)
		if item == nil {
			continue
		}
		idx, ok := seen[*item]
		if !ok {
			idx = len(emp.Items)
			seen[*item] = idx
			emp.Items = append(emp.Items, ItemNode{Value: *item})
		}
		if !desc.HasDate() {
			continue
		}
		date := row.Get(desc.DateColumn)
		if date == nil {
			continue
		}
		if !containsString(emp.Items[idx].Dates, *date) {
			emp.Items[idx].Dates = append(emp.Items[idx].Dates, *date)
		}
	}
	return emp
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
