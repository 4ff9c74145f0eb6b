package crm

import "time"

type EventType string

const (
	EventMeeting  EventType = "meeting"
	EventCall     EventType = "call"
	EventEmail    EventType = "email"
	EventTask     EventType = "task"
	EventDeadline EventType = "deadline"
	EventOther    EventType = "other"
)

var EventTypes = []EventType{EventMeeting, EventCall, EventEmail, EventTask, EventDeadline, EventOther}

func (t EventType) Valid() bool {
	return oneOf(t, EventTypes)
}

type EventStatus string

const (
	EventScheduled   EventStatus = "scheduled"
	EventCompleted   EventStatus = "completed"
	EventCancelled   EventStatus = "cancelled"
	EventRescheduled EventStatus = "rescheduled"
)

var EventStatuses = []EventStatus{EventScheduled, EventCompleted, EventCancelled, EventRescheduled}

type ReminderType string

const (
	ReminderEmail ReminderType = "email"
	ReminderPopup ReminderType = "popup"
	ReminderSMS   ReminderType = "sms"
)

type Reminder struct {
	Type    ReminderType `json:"type" yaml:"type"`
	Minutes int          `json:"minutes" yaml:"minutes"`
}

// Event is a calendar entry.
type Event struct {
	ID          ID          `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Start       time.Time   `json:"start" yaml:"start"`
	End         time.Time   `json:"end" yaml:"end"`
	AllDay      bool        `json:"allDay,omitempty" yaml:"allDay,omitempty"`
	Type        EventType   `json:"type" yaml:"type"`
	Priority    Priority    `json:"priority" yaml:"priority"`
	Status      EventStatus `json:"status" yaml:"status"`

	Color      string     `json:"color,omitempty" yaml:"color,omitempty"`
	Location   string     `json:"location,omitempty" yaml:"location,omitempty"`
	Attendees  []string   `json:"attendees,omitempty" yaml:"attendees,omitempty"`
	CustomerID ID         `json:"customerId,omitempty" yaml:"customerId,omitempty"`
	Reminders  []Reminder `json:"reminders,omitempty" yaml:"reminders,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (e Event) Key() ID            { return e.ID }
func (e Event) Created() time.Time { return e.CreatedAt }
func (e Event) Updated() time.Time { return e.UpdatedAt }

func (e Event) Stamp(created, updated time.Time) Event {
	e.CreatedAt, e.UpdatedAt = created, updated
	return e
}

func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}
