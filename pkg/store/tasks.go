package store

import "github.com/td0m/crm/pkg/crm"

type (
	Customers = Collection[crm.Customer]
	Tasks     = Collection[crm.Task]
	Events    = Collection[crm.Event]
)

// UpdateStatus moves a task to another kanban column. Only the status field
// changes; UpdatedAt is left as it was.
func UpdateStatus(tasks Tasks, id crm.ID, status crm.TaskStatus) (Tasks, error) {
	if !status.Valid() {
		return tasks, ErrInvalidStatus
	}
	i := tasks.index(id)
	if i < 0 {
		return tasks, ErrNotFound
	}
	t := tasks.items[i]
	t.Status = status
	return tasks.replace(i, t), nil
}

// Move puts a task at position index of the column for status, counting only
// the other tasks already in that column. Out of range indexes are clamped.
func Move(tasks Tasks, id crm.ID, status crm.TaskStatus, index int) (Tasks, error) {
	if !status.Valid() {
		return tasks, ErrInvalidStatus
	}
	i := tasks.index(id)
	if i < 0 {
		return tasks, ErrNotFound
	}
	t := tasks.items[i]
	t.Status = status

	rest := make([]crm.Task, 0, len(tasks.items))
	rest = append(rest, tasks.items[:i]...)
	rest = append(rest, tasks.items[i+1:]...)

	// position in rest right after the last task of the column, or the end
	// when the column is empty
	at := len(rest)
	seen := 0
	for j, other := range rest {
		if other.Status != status {
			continue
		}
		if seen == index || (index < 0 && seen == 0) {
			at = j
			break
		}
		seen++
		at = j + 1
	}
	tasks.items = insert(rest, at, t)
	return tasks, nil
}

// ByStatus returns the tasks of one column in board order.
func ByStatus(tasks Tasks, status crm.TaskStatus) []crm.Task {
	return tasks.Filter(func(t crm.Task) bool {
		return t.Status == status
	})
}
