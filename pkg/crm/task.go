package crm

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	_, ok := ColumnFor(s)
	return ok
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var TaskPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// EventPriorities excludes urgent, which only exists on the board.
var EventPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Column is a kanban board column. Every task sits in exactly one column,
// selected by its status.
type Column struct {
	Status TaskStatus
	Title  string
	Order  int
}

var Columns = []Column{
	{Status: TaskTodo, Title: "To Do", Order: 0},
	{Status: TaskInProgress, Title: "In Progress", Order: 1},
	{Status: TaskReview, Title: "Review", Order: 2},
	{Status: TaskDone, Title: "Done", Order: 3},
}

func ColumnFor(s TaskStatus) (Column, bool) {
	for _, c := range Columns {
		if c.Status == s {
			return c, true
		}
	}
	return Column{}, false
}

type Task struct {
	ID          ID         `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      TaskStatus `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Assignee    string     `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`

	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	// CustomerID is a weak reference, deleting the customer leaves it dangling.
	CustomerID     ID      `json:"customerId,omitempty" yaml:"customerId,omitempty"`
	EstimatedHours float64 `json:"estimatedHours,omitempty" yaml:"estimatedHours,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (t Task) Key() ID            { return t.ID }
func (t Task) Created() time.Time { return t.CreatedAt }
func (t Task) Updated() time.Time { return t.UpdatedAt }

func (t Task) Stamp(created, updated time.Time) Task {
	t.CreatedAt, t.UpdatedAt = created, updated
	return t
}

// Overdue reports whether the task has a due date before now and is not done.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskDone
}
