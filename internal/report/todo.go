package report

// EmployeeTasks is one employee's ordered to-do list.
type EmployeeTasks struct {
	Employee string
	Tasks    []string
}

// BuildTodo produces per-employee task sentences from the filtered table.
// Categories are processed in declaration order using their verbose
// (human-readable) columns; within a category, rows keep exploded-table
// order. Employees appear in first-seen order across categories, under
// their "First Last" display name.
func BuildTodo(filtered Table) []EmployeeTasks {
	var todos []EmployeeTasks
	index := make(map[string]int)

	for _, category := range Categories() {
		desc := category.Verbose()
		exploded := Explode(filtered, desc.ItemColumn, desc.DateColumn, DefaultDelimiter)

		for _, row := range exploded.Rows {
			item := row.Get(desc.ItemColumn)
			if item == nil {
				continue
			}
			employee := FormatName(row.Get(ColName))
			if employee == nil {
				continue
			}

			var date *string
			if desc.HasDate() {
				date = row.Get(desc.DateColumn)
			}
			task := category.TaskText(*item, date)

			idx, ok := index[*employee]
			if !ok {
				idx = len(todos)
				index[*employee] = idx
				todos = append(todos, EmployeeTasks{Employee: *employee})
			}
			todos[idx].Tasks = append(todos[idx].Tasks, task)
		}
	}
	return todos
}
