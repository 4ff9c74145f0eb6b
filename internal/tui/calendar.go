package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/crm/internal/ui"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/dateinput"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/validate"
)

// calendarDays is how many days the agenda shows.
const calendarDays = 14

type calendarView struct {
	from   time.Time
	cursor int
}

func startOfWeek(t time.Time) time.Time {
	d := dateinput.StartOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func (a *app) visibleEvents() []crm.Event {
	from := a.calendar.from
	return state.EventsBetween(a.snap.Events.List(), from, from.AddDate(0, 0, calendarDays))
}

func (a *app) selectedEvent() (crm.Event, bool) {
	es := a.visibleEvents()
	if a.calendar.cursor >= len(es) {
		return crm.Event{}, false
	}
	return es[a.calendar.cursor], true
}

func (a *app) setEventCursor(i int) {
	a.calendar.cursor = clamp(i, 0, max(len(a.visibleEvents())-1, 0))
}

func (a *app) calendarKey(msg tea.KeyMsg) {
	v := &a.calendar
	switch msg.String() {
	case "j", "down":
		a.setEventCursor(v.cursor + 1)
	case "k", "up":
		a.setEventCursor(v.cursor - 1)
	case "]":
		v.from = v.from.AddDate(0, 0, 7)
		a.setEventCursor(0)
	case "[":
		v.from = v.from.AddDate(0, 0, -7)
		a.setEventCursor(0)
	case ".":
		v.from = startOfWeek(a.now())
		a.setEventCursor(0)
	case "a":
		start := dateinput.StartOfDay(a.now()).AddDate(0, 0, 1).Add(9 * time.Hour)
		a.editEvent(crm.Event{Start: start, End: start.Add(time.Hour), Type: crm.EventMeeting, Priority: crm.PriorityMedium})
	case "e", "enter":
		if e, ok := a.selectedEvent(); ok {
			a.editEvent(e)
		}
	case "r":
		e, ok := a.selectedEvent()
		if !ok {
			return
		}
		a.askDate("new start", func(start time.Time) error {
			f := validate.EventFormOf(e)
			f.Start, f.End = start, start.Add(e.Duration())
			f.Status = crm.EventRescheduled
			return a.store.EditEvent(e.ID, f)
		})
	case "c", "x":
		e, ok := a.selectedEvent()
		if !ok {
			return
		}
		e.Status = crm.EventCompleted
		if msg.String() == "x" {
			e.Status = crm.EventCancelled
		}
		a.fail(a.store.Dispatch(state.UpdateEvent{Event: e}))
	case "d", "delete":
		if e, ok := a.selectedEvent(); ok {
			a.fail(a.store.Dispatch(state.DeleteEvent{ID: e.ID}))
			a.setEventCursor(v.cursor)
		}
	}
}

const eventTimeLayout = "2006-01-02 15:04"

func (a *app) editEvent(e crm.Event) {
	title := "Edit event"
	if e.ID == "" {
		title = "New event"
	}
	f := newForm(title,
		newField("title", "Title", e.Title),
		newField("type", "Type", string(e.Type)).withHint("meeting, call, email, task, deadline or other"),
		newField("priority", "Priority", string(e.Priority)).withHint("low, medium or high"),
		newField("start", "Start", e.Start.Format(eventTimeLayout)).withHint("e.g. tomorrow 9:30, fri 3pm"),
		newField("end", "End", e.End.Format(eventTimeLayout)),
		newField("location", "Location", e.Location),
		newField("attendees", "Attendees", strings.Join(e.Attendees, ", ")).withHint("comma separated"),
		newField("customerId", "Customer", a.snap.CustomerName(e.CustomerID)).withHint("customer name"),
		newField("description", "Description", e.Description),
	)
	a.openForm(f, func(f form) error {
		ef, errs := a.eventForm(f, e)
		if errs != nil {
			return errs
		}
		if e.ID == "" {
			created, err := a.store.NewEvent(ef)
			if err == nil {
				a.calendar.from = startOfWeek(created.Start)
			}
			return err
		}
		return a.store.EditEvent(e.ID, ef)
	})
}

func (a *app) eventForm(f form, e crm.Event) (validate.EventForm, validate.Errors) {
	ef := validate.EventFormOf(e)
	ef.Title = f.value("title")
	ef.Type = crm.EventType(f.value("type"))
	ef.Priority = crm.Priority(f.value("priority"))
	ef.Location = f.value("location")
	ef.Attendees = splitList(f.value("attendees"))
	ef.Description = f.value("description")
	ef.CustomerID = ""

	errs := validate.Errors{}
	for _, key := range []string{"start", "end"} {
		t, err := a.parseEventTime(f.value(key))
		if err != nil {
			errs[key] = "Unrecognised date"
		}
		if key == "start" {
			ef.Start = t
		} else {
			ef.End = t
		}
	}
	if s := f.value("customerId"); s != "" {
		id, ok := a.customerByName(s)
		if !ok {
			errs["customerId"] = "No customer named " + s
		}
		ef.CustomerID = id
	}
	if len(errs) > 0 {
		return ef, errs
	}
	return ef, nil
}

func (a *app) parseEventTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(eventTimeLayout, s, a.now().Location()); err == nil {
		return t, nil
	}
	return dateinput.Parse(s, a.now())
}

func (a *app) viewCalendar() string {
	p := a.palette
	from := a.calendar.from
	to := from.AddDate(0, 0, calendarDays-1)
	es := a.visibleEvents()

	var b strings.Builder
	b.WriteString(p.Title().Render("Calendar") + p.Muted().Render(fmt.Sprintf("  %s - %s • %d events", from.Format("02 Jan"), to.Format("02 Jan 2006"), len(es))) + "\n")

	today := dateinput.StartOfDay(a.now())
	var day time.Time
	for i, e := range es {
		if d := dateinput.StartOfDay(e.Start); !d.Equal(day) || i == 0 {
			day = d
			heading := p.Muted().Bold(true)
			if d.Equal(today) {
				heading = p.Title()
			}
			b.WriteString("\n" + heading.Render(d.Format("Monday 02 January")) + "\n")
		}
		b.WriteString(a.viewEvent(e, i == a.calendar.cursor) + "\n")
	}
	if len(es) == 0 {
		b.WriteString("\n" + p.Muted().Render("nothing scheduled, press a to add an event") + "\n")
	}
	return b.String()
}

func (a *app) viewEvent(e crm.Event, selected bool) string {
	p := a.palette
	when := e.Start.Format("15:04") + "-" + e.End.Format("15:04")
	if e.AllDay {
		when = "all day"
	}
	title := p.Text()
	if selected {
		title = p.Cursor()
	}
	switch e.Status {
	case crm.EventCancelled:
		title = title.Copy().Strikethrough(true)
	case crm.EventCompleted:
		title = title.Copy().Faint(true)
	}
	meta := []string{
		lipgloss.NewStyle().Foreground(ui.PriorityColor(e.Priority)).Render(string(e.Priority)),
		p.Muted().Render(string(e.Status)),
	}
	if e.Location != "" {
		meta = append(meta, p.Muted().Render(e.Location))
	}
	if name := a.snap.CustomerName(e.CustomerID); name != "" {
		meta = append(meta, p.Muted().Render(name))
	}
	divider := lipgloss.NewStyle().Foreground(p.Faded).Render(" ∙ ")
	return fmt.Sprintf("  %s %s %s  %s", p.Muted().Render(pad(when, 12)), ui.EventTypeIcon(e.Type), title.Render(e.Title), strings.Join(meta, divider))
}
