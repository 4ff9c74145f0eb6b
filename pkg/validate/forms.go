package validate

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/td0m/crm/pkg/crm"
)

type CustomerForm struct {
	Name      string             `json:"name" validate:"required,min=2"`
	Email     string             `json:"email" validate:"required,email_address"`
	Phone     string             `json:"phone" validate:"required,min=10,phone"`
	Company   string             `json:"company" validate:"required"`
	Status    crm.CustomerStatus `json:"status" validate:"required,oneof=active inactive pending"`
	DealValue decimal.Decimal    `json:"dealValue" validate:"gte=0"`
	Source    crm.Source         `json:"source" validate:"omitempty,oneof=website referral social email phone other"`
	Notes     string             `json:"notes"`
	Tags      []string           `json:"tags"`
	Address   *crm.Address       `json:"address"`
}

// Customer validates a customer form. It returns nil when the form is valid.
func Customer(f CustomerForm) Errors {
	return check(f)
}

// Apply copies the form's fields onto c, keeping its identity and timestamps.
func (f CustomerForm) Apply(c crm.Customer) crm.Customer {
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Company = f.Company
	c.Status = f.Status
	c.DealValue = f.DealValue
	c.Source = f.Source
	c.Notes = f.Notes
	c.Tags = f.Tags
	c.Address = f.Address
	return c
}

func CustomerFormOf(c crm.Customer) CustomerForm {
	return CustomerForm{
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Status:    c.Status,
		DealValue: c.DealValue,
		Source:    c.Source,
		Notes:     c.Notes,
		Tags:      c.Tags,
		Address:   c.Address,
	}
}

type TaskForm struct {
	Title          string         `json:"title" validate:"required,min=3"`
	Description    string         `json:"description"`
	Status         crm.TaskStatus `json:"status" validate:"required,oneof=todo in-progress review done"`
	Priority       crm.Priority   `json:"priority" validate:"required,oneof=low medium high urgent"`
	Assignee       string         `json:"assignee"`
	DueDate        *time.Time     `json:"dueDate"`
	Tags           []string       `json:"tags"`
	CustomerID     crm.ID         `json:"customerId"`
	EstimatedHours float64        `json:"estimatedHours" validate:"gte=0"`
}

func Task(f TaskForm) Errors {
	return check(f)
}

func (f TaskForm) Apply(t crm.Task) crm.Task {
	t.Title = f.Title
	t.Description = f.Description
	t.Status = f.Status
	t.Priority = f.Priority
	t.Assignee = f.Assignee
	t.DueDate = f.DueDate
	t.Tags = f.Tags
	t.CustomerID = f.CustomerID
	t.EstimatedHours = f.EstimatedHours
	return t
}

func TaskFormOf(t crm.Task) TaskForm {
	return TaskForm{
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		Assignee:       t.Assignee,
		DueDate:        t.DueDate,
		Tags:           t.Tags,
		CustomerID:     t.CustomerID,
		EstimatedHours: t.EstimatedHours,
	}
}

type EventForm struct {
	Title       string          `json:"title" validate:"required,min=3"`
	Description string          `json:"description"`
	Start       time.Time       `json:"start" validate:"required"`
	End         time.Time       `json:"end" validate:"required,gtefield=Start"`
	AllDay      bool            `json:"allDay"`
	Type        crm.EventType   `json:"type" validate:"required,oneof=meeting call email task deadline other"`
	Priority    crm.Priority    `json:"priority" validate:"required,oneof=low medium high"`
	Status      crm.EventStatus `json:"status" validate:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	Location    string          `json:"location"`
	Attendees   []string        `json:"attendees"`
	CustomerID  crm.ID          `json:"customerId"`
	Reminders   []crm.Reminder  `json:"reminders"`
}

func Event(f EventForm) Errors {
	return check(f)
}

// Apply copies the form onto e. A form without a status schedules the event.
func (f EventForm) Apply(e crm.Event) crm.Event {
	e.Title = f.Title
	e.Description = f.Description
	e.Start = f.Start
	e.End = f.End
	e.AllDay = f.AllDay
	e.Type = f.Type
	e.Priority = f.Priority
	e.Status = f.Status
	if e.Status == "" {
		e.Status = crm.EventScheduled
	}
	e.Location = f.Location
	e.Attendees = f.Attendees
	e.CustomerID = f.CustomerID
	e.Reminders = f.Reminders
	return e
}

func EventFormOf(e crm.Event) EventForm {
	return EventForm{
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
		Type:        e.Type,
		Priority:    e.Priority,
		Status:      e.Status,
		Location:    e.Location,
		Attendees:   e.Attendees,
		CustomerID:  e.CustomerID,
		Reminders:   e.Reminders,
	}
}
