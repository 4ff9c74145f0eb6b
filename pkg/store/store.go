package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/td0m/crm/pkg/crm"
)

var (
	ErrIDAlreadyExists = errors.New("entity with the given ID already exists")
	ErrNotFound        = errors.New("not found")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidMode     = errors.New("invalid theme mode")
	ErrInvalidColor    = errors.New("invalid color")
)

// Entity is anything a Collection can hold.
type Entity[T any] interface {
	Key() crm.ID
	Created() time.Time
	Updated() time.Time
	Stamp(created, updated time.Time) T
}

// Collection is an ordered, immutable sequence of entities of one type.
// Every mutation returns a new Collection and leaves the receiver untouched,
// so a Collection handed out as a snapshot never changes under the reader.
type Collection[T Entity[T]] struct {
	items []T

	Loading bool
	Error   *string
}

func NewCollection[T Entity[T]](items ...T) Collection[T] {
	return Collection[T]{}.SetAll(items)
}

// SetAll replaces the whole collection. Items are not validated.
func (c Collection[T]) SetAll(items []T) Collection[T] {
	c.items = clone(items)
	return c
}

// Add appends e, keeping insertion order.
func (c Collection[T]) Add(e T) (Collection[T], error) {
	if c.index(e.Key()) >= 0 {
		return c, ErrIDAlreadyExists
	}
	items := make([]T, len(c.items), len(c.items)+1)
	copy(items, c.items)
	c.items = append(items, e)
	return c, nil
}

// Update replaces the entity with e's ID in place. CreatedAt is kept from the
// stored entity whatever e carries. UpdatedAt is stamped strictly after the
// previous one, even when the clock has not advanced, and never before
// CreatedAt.
func (c Collection[T]) Update(e T, now time.Time) (Collection[T], error) {
	i := c.index(e.Key())
	if i < 0 {
		return c, ErrNotFound
	}
	prev := c.items[i]
	created := prev.Created()
	if last := prev.Updated(); !now.After(last) {
		now = last.Add(time.Nanosecond)
	}
	if now.Before(created) {
		now = created
	}
	return c.replace(i, e.Stamp(created, now)), nil
}

// Delete removes every entity with the given id.
func (c Collection[T]) Delete(id crm.ID) (Collection[T], error) {
	if c.index(id) < 0 {
		return c, ErrNotFound
	}
	items := make([]T, 0, len(c.items)-1)
	for _, e := range c.items {
		if e.Key() != id {
			items = append(items, e)
		}
	}
	c.items = items
	return c, nil
}

func (c Collection[T]) SetLoading(loading bool) Collection[T] {
	c.Loading = loading
	return c
}

func (c Collection[T]) SetError(err *string) Collection[T] {
	c.Error = err
	return c
}

// List returns a copy of all entities in insertion order.
func (c Collection[T]) List() []T {
	return clone(c.items)
}

func (c Collection[T]) Get(id crm.ID) (T, bool) {
	if i := c.index(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c Collection[T]) Len() int {
	return len(c.items)
}

func (c Collection[T]) Filter(keep func(T) bool) []T {
	out := []T{}
	for _, e := range c.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c Collection[T]) index(id crm.ID) int {
	for i, e := range c.items {
		if e.Key() == id {
			return i
		}
	}
	return -1
}

func (c Collection[T]) replace(i int, e T) Collection[T] {
	items := clone(c.items)
	items[i] = e
	c.items = items
	return c
}

type serialized[T any] struct {
	Items   []T     `json:"items"`
	Loading bool    `json:"loading"`
	Error   *string `json:"error"`
}

func (c Collection[T]) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return json.Marshal(serialized[T]{Items: items, Loading: c.Loading, Error: c.Error})
}

func (c *Collection[T]) UnmarshalJSON(bs []byte) error {
	var out serialized[T]
	if err := json.Unmarshal(bs, &out); err != nil {
		return err
	}
	c.items = out.Items
	c.Loading = out.Loading
	c.Error = out.Error
	return nil
}

func clone[T any](a []T) []T {
	if a == nil {
		return nil
	}
	out := make([]T, len(a))
	copy(out, a)
	return out
}

func insert[T any](a []T, index int, value T) []T {
	if len(a) == index { // nil or empty slice or after last element
		return append(a, value)
	}
	a = append(a[:index+1], a[index:]...) // index < len(a)
	a[index] = value
	return a
}
