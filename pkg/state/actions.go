package state

import "github.com/td0m/crm/pkg/crm"

// Action is a typed mutation intent handed to Dispatch.
type Action interface {
	isAction()
}

type (
	SetCustomers        struct{ Items []crm.Customer }
	AddCustomer         struct{ Customer crm.Customer }
	UpdateCustomer      struct{ Customer crm.Customer }
	DeleteCustomer      struct{ ID crm.ID }
	SetCustomersLoading struct{ Loading bool }
	SetCustomersError   struct{ Err *string }
)

type (
	SetTasks        struct{ Items []crm.Task }
	AddTask         struct{ Task crm.Task }
	UpdateTask      struct{ Task crm.Task }
	DeleteTask      struct{ ID crm.ID }
	SetTasksLoading struct{ Loading bool }
	SetTasksError   struct{ Err *string }

	// UpdateTaskStatus moves a card to another column without touching
	// anything else on it.
	UpdateTaskStatus struct {
		ID     crm.ID
		Status crm.TaskStatus
	}
	// MoveTask is a drag and drop: column plus position within the column.
	MoveTask struct {
		ID     crm.ID
		Status crm.TaskStatus
		Index  int
	}
)

type (
	SetEvents        struct{ Items []crm.Event }
	AddEvent         struct{ Event crm.Event }
	UpdateEvent      struct{ Event crm.Event }
	DeleteEvent      struct{ ID crm.ID }
	SetEventsLoading struct{ Loading bool }
	SetEventsError   struct{ Err *string }
)

type (
	SetThemeMode      struct{ Mode crm.Mode }
	ToggleTheme       struct{}
	SetPrimaryColor   struct{ Color string }
	SetSecondaryColor struct{ Color string }
)

func (SetCustomers) isAction()        {}
func (AddCustomer) isAction()         {}
func (UpdateCustomer) isAction()      {}
func (DeleteCustomer) isAction()      {}
func (SetCustomersLoading) isAction() {}
func (SetCustomersError) isAction()   {}

func (SetTasks) isAction()         {}
func (AddTask) isAction()          {}
func (UpdateTask) isAction()       {}
func (DeleteTask) isAction()       {}
func (SetTasksLoading) isAction()  {}
func (SetTasksError) isAction()    {}
func (UpdateTaskStatus) isAction() {}
func (MoveTask) isAction()         {}

func (SetEvents) isAction()        {}
func (AddEvent) isAction()         {}
func (UpdateEvent) isAction()      {}
func (DeleteEvent) isAction()      {}
func (SetEventsLoading) isAction() {}
func (SetEventsError) isAction()   {}

func (SetThemeMode) isAction()      {}
func (ToggleTheme) isAction()       {}
func (SetPrimaryColor) isAction()   {}
func (SetSecondaryColor) isAction() {}
