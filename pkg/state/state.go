// Package state composes the entity stores into one application state and
// owns the single dispatch point through which every mutation flows.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/store"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrMissingID     = errors.New("entity has no ID")
)

// State is the composed snapshot read by every view.
type State struct {
	Customers store.Customers `json:"customers"`
	Tasks     store.Tasks     `json:"tasks"`
	Events    store.Events    `json:"events"`
	Theme     crm.Theme       `json:"theme"`
}

func Initial() State {
	return State{Theme: crm.DefaultTheme()}
}

// Reduce computes the state that follows s after a. It never modifies s.
// On error the returned state is s.
func Reduce(s State, a Action, now time.Time) (State, error) {
	var err error
	switch a := a.(type) {
	case SetCustomers:
		s.Customers = s.Customers.SetAll(a.Items)
	case AddCustomer:
		if err = checkCustomer(a.Customer); err == nil {
			s.Customers, err = s.Customers.Add(a.Customer)
		}
		err = wrap(err, "add customer", a.Customer.ID)
	case UpdateCustomer:
		if err = checkCustomer(a.Customer); err == nil {
			s.Customers, err = s.Customers.Update(a.Customer, now)
		}
		err = wrap(err, "update customer", a.Customer.ID)
	case DeleteCustomer:
		s.Customers, err = s.Customers.Delete(a.ID)
		err = wrap(err, "delete customer", a.ID)
	case SetCustomersLoading:
		s.Customers = s.Customers.SetLoading(a.Loading)
	case SetCustomersError:
		s.Customers = s.Customers.SetError(a.Err)

	case SetTasks:
		s.Tasks = s.Tasks.SetAll(a.Items)
	case AddTask:
		if err = checkTask(a.Task); err == nil {
			s.Tasks, err = s.Tasks.Add(a.Task)
		}
		err = wrap(err, "add task", a.Task.ID)
	case UpdateTask:
		if err = checkTask(a.Task); err == nil {
			s.Tasks, err = s.Tasks.Update(a.Task, now)
		}
		err = wrap(err, "update task", a.Task.ID)
	case DeleteTask:
		s.Tasks, err = s.Tasks.Delete(a.ID)
		err = wrap(err, "delete task", a.ID)
	case UpdateTaskStatus:
		s.Tasks, err = store.UpdateStatus(s.Tasks, a.ID, a.Status)
		err = wrap(err, "update task status", a.ID)
	case MoveTask:
		s.Tasks, err = store.Move(s.Tasks, a.ID, a.Status, a.Index)
		err = wrap(err, "move task", a.ID)
	case SetTasksLoading:
		s.Tasks = s.Tasks.SetLoading(a.Loading)
	case SetTasksError:
		s.Tasks = s.Tasks.SetError(a.Err)

	case SetEvents:
		s.Events = s.Events.SetAll(a.Items)
	case AddEvent:
		if err = checkEvent(a.Event); err == nil {
			s.Events, err = s.Events.Add(a.Event)
		}
		err = wrap(err, "add event", a.Event.ID)
	case UpdateEvent:
		if err = checkEvent(a.Event); err == nil {
			s.Events, err = s.Events.Update(a.Event, now)
		}
		err = wrap(err, "update event", a.Event.ID)
	case DeleteEvent:
		s.Events, err = s.Events.Delete(a.ID)
		err = wrap(err, "delete event", a.ID)
	case SetEventsLoading:
		s.Events = s.Events.SetLoading(a.Loading)
	case SetEventsError:
		s.Events = s.Events.SetError(a.Err)

	case SetThemeMode:
		s.Theme, err = store.SetMode(s.Theme, a.Mode)
	case ToggleTheme:
		s.Theme = store.Toggle(s.Theme)
	case SetPrimaryColor:
		s.Theme, err = store.SetPrimaryColor(s.Theme, a.Color)
	case SetSecondaryColor:
		s.Theme, err = store.SetSecondaryColor(s.Theme, a.Color)

	default:
		err = fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}
	return s, err
}

// the stores themselves accept anything; these guard the enumerations that
// views rely on when grouping and colouring
func checkCustomer(c crm.Customer) error {
	if c.ID == "" {
		return ErrMissingID
	}
	if !c.Status.Valid() {
		return store.ErrInvalidStatus
	}
	return nil
}

func checkTask(t crm.Task) error {
	if t.ID == "" {
		return ErrMissingID
	}
	if !t.Status.Valid() {
		return store.ErrInvalidStatus
	}
	return nil
}

func checkEvent(e crm.Event) error {
	if e.ID == "" {
		return ErrMissingID
	}
	return nil
}

func wrap(err error, op string, id crm.ID) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %q: %w", op, id, err)
}
