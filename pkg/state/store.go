package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/logger"
	"github.com/td0m/crm/pkg/persist"
	"github.com/td0m/crm/pkg/validate"
)

// ThemeKey is the key-value slot holding the last chosen theme mode.
const ThemeKey = "theme"

type subscriber struct {
	id int
	fn func(State)
}

// Store owns the current State. Every change goes through Dispatch, which
// replaces the snapshot as a whole and then tells the subscribers.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    []subscriber
	nextSub int

	kv  persist.KV
	log *logger.Logger
	now func() time.Time
	ids func() crm.ID
}

type Option func(*Store)

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDs(ids func() crm.ID) Option {
	return func(s *Store) { s.ids = ids }
}

// WithState sets the snapshot the store starts from.
func WithState(st State) Option {
	return func(s *Store) { s.state = st }
}

// New creates a store and restores the saved theme mode from kv, if any,
// before anyone can read a snapshot.
func New(kv persist.KV, opts ...Option) *Store {
	s := &Store{
		state: Initial(),
		kv:    kv,
		log:   logger.Nop(),
		now:   time.Now,
		ids:   crm.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restoreTheme()
	return s
}

func (s *Store) restoreTheme() {
	saved, found, err := s.kv.Get(ThemeKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read saved theme")
		return
	}
	if !found {
		return
	}
	mode := crm.Mode(saved)
	if !mode.Valid() {
		s.log.Warn().Str("mode", saved).Msg("ignoring invalid saved theme")
		return
	}
	s.state.Theme.Mode = mode
	s.log.Debug().Str("mode", saved).Msg("theme restored")
}

// Snapshot returns the current state. Snapshots are never modified, later
// dispatches produce new ones.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with every new snapshot. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies a to the current state. When the action fails the state is
// left as it was and no subscriber is called. A theme mode change is written
// through to the key-value store; if that write fails the new state is kept
// and the error is returned.
func (s *Store) Dispatch(a Action) error {
	return s.apply(func(State) Action { return a })
}

// apply builds the action from the current state and reduces it under the same
// lock, so no other dispatch can land in between.
func (s *Store) apply(build func(State) Action) error {
	s.mu.Lock()
	prev := s.state
	a := build(prev)
	next, err := Reduce(prev, a, s.now())
	if err != nil {
		s.mu.Unlock()
		s.log.Debug().Err(err).Str("action", fmt.Sprintf("%T", a)).Msg("action rejected")
		return err
	}
	s.state = next
	var persistErr error
	if next.Theme.Mode != prev.Theme.Mode {
		if err := s.kv.Set(ThemeKey, string(next.Theme.Mode)); err != nil {
			persistErr = fmt.Errorf("save theme: %w", err)
		}
	}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.log.Debug().Str("action", fmt.Sprintf("%T", a)).Msg("dispatched")
	if persistErr != nil {
		s.log.Error().Err(persistErr).Msg("theme not saved")
	}
	for _, sub := range subs {
		sub.fn(next)
	}
	return persistErr
}

// NewCustomer validates f and adds a customer built from it.
func (s *Store) NewCustomer(f validate.CustomerForm) (crm.Customer, error) {
	if errs := validate.Customer(f); errs != nil {
		return crm.Customer{}, errs
	}
	now := s.now()
	c := f.Apply(crm.Customer{ID: s.ids(), CreatedAt: now, UpdatedAt: now})
	return c, s.Dispatch(AddCustomer{Customer: c})
}

// EditCustomer validates f and applies it to the customer with the given id.
func (s *Store) EditCustomer(id crm.ID, f validate.CustomerForm) error {
	if errs := validate.Customer(f); errs != nil {
		return errs
	}
	return s.apply(func(st State) Action {
		c, _ := st.Customers.Get(id)
		c.ID = id
		return UpdateCustomer{Customer: f.Apply(c)}
	})
}

func (s *Store) NewTask(f validate.TaskForm) (crm.Task, error) {
	if errs := validate.Task(f); errs != nil {
		return crm.Task{}, errs
	}
	now := s.now()
	t := f.Apply(crm.Task{ID: s.ids(), CreatedAt: now, UpdatedAt: now})
	return t, s.Dispatch(AddTask{Task: t})
}

func (s *Store) EditTask(id crm.ID, f validate.TaskForm) error {
	if errs := validate.Task(f); errs != nil {
		return errs
	}
	return s.apply(func(st State) Action {
		t, _ := st.Tasks.Get(id)
		t.ID = id
		return UpdateTask{Task: f.Apply(t)}
	})
}

func (s *Store) NewEvent(f validate.EventForm) (crm.Event, error) {
	if errs := validate.Event(f); errs != nil {
		return crm.Event{}, errs
	}
	now := s.now()
	e := f.Apply(crm.Event{ID: s.ids(), CreatedAt: now, UpdatedAt: now})
	return e, s.Dispatch(AddEvent{Event: e})
}

func (s *Store) EditEvent(id crm.ID, f validate.EventForm) error {
	if errs := validate.Event(f); errs != nil {
		return errs
	}
	return s.apply(func(st State) Action {
		e, _ := st.Events.Get(id)
		e.ID = id
		return UpdateEvent{Event: f.Apply(e)}
	})
}
