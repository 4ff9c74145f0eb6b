package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/dateinput"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/store"
	"github.com/td0m/crm/pkg/validate"
)

type kanbanView struct {
	col, row int
}

func (a *app) column(i int) []crm.Task {
	return store.ByStatus(a.snap.Tasks, crm.Columns[i].Status)
}

func (a *app) selectedTask() (crm.Task, bool) {
	ts := a.column(a.kanban.col)
	if a.kanban.row >= len(ts) {
		return crm.Task{}, false
	}
	return ts[a.kanban.row], true
}

func (a *app) setKanbanCursor(col, row int) {
	a.kanban.col = clamp(col, 0, len(crm.Columns)-1)
	a.kanban.row = clamp(row, 0, max(len(a.column(a.kanban.col))-1, 0))
}

func (a *app) kanbanKey(msg tea.KeyMsg) {
	v := &a.kanban
	switch msg.String() {
	case "h", "left":
		a.setKanbanCursor(v.col-1, v.row)
	case "l", "right":
		a.setKanbanCursor(v.col+1, v.row)
	case "j", "down":
		a.setKanbanCursor(v.col, v.row+1)
	case "k", "up":
		a.setKanbanCursor(v.col, v.row-1)
	case "H", "L":
		t, ok := a.selectedTask()
		if !ok {
			return
		}
		to := v.col - 1
		if msg.String() == "L" {
			to = v.col + 1
		}
		if to < 0 || to >= len(crm.Columns) {
			return
		}
		if err := a.store.Dispatch(state.UpdateTaskStatus{ID: t.ID, Status: crm.Columns[to].Status}); err != nil {
			a.fail(err)
			return
		}
		a.setKanbanCursor(to, taskIndex(a.column(to), t.ID))
	case "J", "K":
		t, ok := a.selectedTask()
		if !ok {
			return
		}
		to := v.row + 1
		if msg.String() == "K" {
			to = v.row - 1
		}
		if to < 0 || to >= len(a.column(v.col)) {
			return
		}
		a.fail(a.store.Dispatch(state.MoveTask{ID: t.ID, Status: t.Status, Index: to}))
		a.setKanbanCursor(v.col, to)
	case "a":
		a.editTask(crm.Task{Status: crm.Columns[v.col].Status, Priority: crm.PriorityMedium})
	case "e", "enter":
		if t, ok := a.selectedTask(); ok {
			a.editTask(t)
		}
	case "D":
		t, ok := a.selectedTask()
		if !ok {
			return
		}
		a.askDate("due", func(due time.Time) error {
			f := validate.TaskFormOf(t)
			f.DueDate = &due
			return a.store.EditTask(t.ID, f)
		})
	case "d", "delete":
		if t, ok := a.selectedTask(); ok {
			a.fail(a.store.Dispatch(state.DeleteTask{ID: t.ID}))
			a.setKanbanCursor(v.col, v.row)
		}
	}
}

func taskIndex(ts []crm.Task, id crm.ID) int {
	for i, t := range ts {
		if t.ID == id {
			return i
		}
	}
	return 0
}

func (a *app) editTask(t crm.Task) {
	title := "Edit task"
	if t.ID == "" {
		title = "New task"
	}
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format("2006-01-02")
	}
	hours := ""
	if t.EstimatedHours > 0 {
		hours = strconv.FormatFloat(t.EstimatedHours, 'f', -1, 64)
	}
	f := newForm(title,
		newField("title", "Title", t.Title),
		newField("description", "Description", t.Description),
		newField("status", "Status", string(t.Status)).withHint("todo, in-progress, review or done"),
		newField("priority", "Priority", string(t.Priority)).withHint("low, medium, high or urgent"),
		newField("assignee", "Assignee", t.Assignee),
		newField("dueDate", "Due", due).withHint("e.g. tomorrow, in 3 days, 21-04"),
		newField("customerId", "Customer", a.snap.CustomerName(t.CustomerID)).withHint("customer name"),
		newField("estimatedHours", "Hours", hours),
		newField("tags", "Tags", strings.Join(t.Tags, ", ")).withHint("comma separated"),
	)
	a.openForm(f, func(f form) error {
		tf, errs := a.taskForm(f)
		if errs != nil {
			return errs
		}
		if t.ID == "" {
			_, err := a.store.NewTask(tf)
			return err
		}
		return a.store.EditTask(t.ID, tf)
	})
}

func (a *app) taskForm(f form) (validate.TaskForm, validate.Errors) {
	tf := validate.TaskForm{
		Title:       f.value("title"),
		Description: f.value("description"),
		Status:      crm.TaskStatus(f.value("status")),
		Priority:    crm.Priority(f.value("priority")),
		Assignee:    f.value("assignee"),
		Tags:        splitList(f.value("tags")),
	}
	errs := validate.Errors{}
	if s := f.value("dueDate"); s != "" {
		due, err := dateinput.Parse(s, a.now())
		if err != nil {
			errs["dueDate"] = "Unrecognised date"
		}
		tf.DueDate = &due
	}
	if s := f.value("customerId"); s != "" {
		id, ok := a.customerByName(s)
		if !ok {
			errs["customerId"] = "No customer named " + s
		}
		tf.CustomerID = id
	}
	if s := f.value("estimatedHours"); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs["estimatedHours"] = "Hours must be a number"
		}
		tf.EstimatedHours = h
	}
	if len(errs) > 0 {
		return tf, errs
	}
	return tf, nil
}

func (a *app) customerByName(name string) (crm.ID, bool) {
	for _, c := range a.snap.Customers.List() {
		if strings.EqualFold(c.Name, name) || string(c.ID) == name {
			return c.ID, true
		}
	}
	return "", false
}

func (a *app) viewKanban() string {
	p := a.palette
	width := max((a.width-4)/len(crm.Columns), 16)
	now := a.now()

	cols := make([]string, len(crm.Columns))
	for i, c := range crm.Columns {
		ts := a.column(i)
		header := p.Title()
		if i != a.kanban.col {
			header = p.Muted().Bold(true)
		}
		lines := []string{header.Render(fmt.Sprintf("%s (%d)", c.Title, len(ts))), ""}
		for j, t := range ts {
			lines = append(lines, a.viewCard(t, i == a.kanban.col && j == a.kanban.row, width-2, now))
		}
		cols[i] = lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *app) viewCard(t crm.Task, selected bool, width int, now time.Time) string {
	p := a.palette
	title := p.Text().Bold(true)
	if selected {
		title = p.Cursor().Bold(true)
	}
	if t.Status == crm.TaskDone {
		title = title.Copy().Strikethrough(true)
	}
	meta := []string{lipgloss.NewStyle().Foreground(ui.PriorityColor(t.Priority)).Render(string(t.Priority))}
	if t.DueDate != nil {
		due := p.Muted()
		if t.Overdue(now) {
			due = lipgloss.NewStyle().Foreground(ui.Red)
		}
		meta = append(meta, due.Render(dateinput.Format(*t.DueDate, now)))
	}
	if t.Assignee != "" {
		meta = append(meta, p.Muted().Render("@"+t.Assignee))
	}
	if name := a.snap.CustomerName(t.CustomerID); name != "" {
		meta = append(meta, p.Muted().Render(name))
	}
	divider := lipgloss.NewStyle().Foreground(p.Faded).Render(" ∙ ")
	return title.Render(pad(t.Title, width)) + "\n" + strings.Join(meta, divider) + "\n"
}
