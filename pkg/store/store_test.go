package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/shopspring/decimal"
	"github.com/td0m/crm/pkg/crm"
)

func customer(id crm.ID, name string, at time.Time) crm.Customer {
	return crm.Customer{
		ID:        id,
		Name:      name,
		Email:     name + "@x.com",
		Phone:     "5551234567",
		Company:   "Acme",
		Status:    crm.CustomerActive,
		DealValue: decimal.NewFromInt(100),
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func ids(cs []crm.Customer) []crm.ID {
	out := make([]crm.ID, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestCollection_Add(t *testing.T) {
	is := is.New(t)
	now := time.Now()

	var c Customers
	var err error
	for _, id := range []crm.ID{"a", "b", "c", "d"} {
		c, err = c.Add(customer(id, string(id), now))
		is.NoErr(err)
	}
	is.Equal(c.Len(), 4)
	is.Equal(ids(c.List()), []crm.ID{"a", "b", "c", "d"})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		is := is.New(t)
		next, err := c.Add(customer("b", "dup", now))
		is.Equal(err, ErrIDAlreadyExists)
		is.Equal(next.Len(), 4)
	})

	t.Run("does not change the receiver", func(t *testing.T) {
		is := is.New(t)
		before := c.List()
		_, err := c.Add(customer("e", "e", now))
		is.NoErr(err)
		is.Equal(c.List(), before)
	})
}

func TestCollection_Update(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewCollection(customer("a", "ana", created), customer("b", "bob", created))

	t.Run("replaces in place and refreshes updatedAt", func(t *testing.T) {
		is := is.New(t)
		orig, _ := c.Get("b")
		changed := orig
		changed.Company = "Globex"
		next, err := c.Update(changed, created.Add(time.Minute))
		is.NoErr(err)
		got, ok := next.Get("b")
		is.True(ok)
		is.Equal(got.Company, "Globex")
		is.True(got.UpdatedAt.After(orig.UpdatedAt))
		is.Equal(got.CreatedAt, orig.CreatedAt)
		is.Equal(ids(next.List()), []crm.ID{"a", "b"})
	})

	t.Run("updatedAt grows even if the clock did not", func(t *testing.T) {
		is := is.New(t)
		orig, _ := c.Get("a")
		next, err := c.Update(orig, created)
		is.NoErr(err)
		got, _ := next.Get("a")
		is.True(got.UpdatedAt.After(orig.UpdatedAt))
	})

	t.Run("keeps the stored createdAt", func(t *testing.T) {
		is := is.New(t)
		orig, _ := c.Get("a")
		changed := orig
		changed.Name = "ana maria"
		changed.CreatedAt = created.AddDate(0, 0, 2)
		next, err := c.Update(changed, created.Add(time.Hour))
		is.NoErr(err)
		got, _ := next.Get("a")
		is.Equal(got.Name, "ana maria")
		is.Equal(got.CreatedAt, created)
		is.Equal(got.UpdatedAt, created.Add(time.Hour))
		is.True(!got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("updatedAt never precedes createdAt", func(t *testing.T) {
		is := is.New(t)
		// stored with a clock that ran ahead of the one updating it
		future := customer("f", "fred", created.AddDate(0, 0, 5))
		future.UpdatedAt = future.CreatedAt.Add(-time.Hour)
		fc := NewCollection(future)
		next, err := fc.Update(future, created)
		is.NoErr(err)
		got, _ := next.Get("f")
		is.Equal(got.CreatedAt, future.CreatedAt)
		is.True(!got.UpdatedAt.Before(got.CreatedAt))
	})

	t.Run("returns error on unknown id", func(t *testing.T) {
		is := is.New(t)
		next, err := c.Update(customer("zzz", "nobody", created), created)
		is.Equal(err, ErrNotFound)
		is.Equal(next.List(), c.List())
	})
}

func TestCollection_Delete(t *testing.T) {
	now := time.Now()
	c := NewCollection(customer("a", "a", now), customer("b", "b", now), customer("c", "c", now))

	t.Run("removes by id", func(t *testing.T) {
		is := is.New(t)
		next, err := c.Delete("b")
		is.NoErr(err)
		is.Equal(ids(next.List()), []crm.ID{"a", "c"})
		is.Equal(c.Len(), 3)
	})

	t.Run("absent id leaves collection unchanged", func(t *testing.T) {
		is := is.New(t)
		next, err := c.Delete("nope")
		is.Equal(err, ErrNotFound)
		is.Equal(next.List(), c.List())
		again, err := next.Delete("nope")
		is.Equal(err, ErrNotFound)
		is.Equal(again.List(), c.List())
	})

	t.Run("removes every duplicate loaded in bulk", func(t *testing.T) {
		is := is.New(t)
		dups := c.SetAll([]crm.Customer{customer("x", "1", now), customer("x", "2", now), customer("y", "3", now)})
		next, err := dups.Delete("x")
		is.NoErr(err)
		is.Equal(ids(next.List()), []crm.ID{"y"})
	})
}

func TestCollection_SetAllRoundTrip(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	c := NewCollection(customer("a", "a", now), customer("b", "b", now))
	is.Equal(c.SetAll(c.List()).List(), c.List())
}

func TestCollection_SetAllCopies(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	items := []crm.Customer{customer("a", "a", now)}
	c := NewCollection[crm.Customer]().SetAll(items)
	items[0].Name = "changed"
	got, _ := c.Get("a")
	is.Equal(got.Name, "a")
}

func TestCollection_Reads(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	b := customer("b", "b", now)
	b.Status = crm.CustomerPending
	c := NewCollection(customer("a", "a", now), b, customer("c", "c", now))

	pending := c.Filter(func(c crm.Customer) bool { return c.Status == crm.CustomerPending })
	is.Equal(ids(pending), []crm.ID{"b"})
	is.Equal(len(c.Filter(func(crm.Customer) bool { return false })), 0)

	_, ok := c.Get("nope")
	is.True(!ok)

	list := c.List()
	list[0].Name = "changed"
	got, _ := c.Get("a")
	is.Equal(got.Name, "a") // List hands out a copy
}

func TestCollection_Flags(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	c := NewCollection(customer("a", "a", now))
	msg := "offline"
	c = c.SetLoading(true).SetError(&msg)
	is.True(c.Loading)
	is.Equal(*c.Error, "offline")
	is.Equal(c.Len(), 1)
	c = c.SetError(nil).SetLoading(false)
	is.True(c.Error == nil)
	is.True(!c.Loading)
}

func TestCollection_JSON(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := NewCollection(customer("a", "a", now)).SetLoading(true)
	bs, err := json.Marshal(c)
	is.NoErr(err)

	var out Customers
	is.NoErr(json.Unmarshal(bs, &out))
	is.True(out.Loading)
	got, ok := out.Get("a")
	is.True(ok)
	is.Equal(got.Email, "a@x.com")
	is.True(got.DealValue.Equal(decimal.NewFromInt(100)))
}

// The scenario from the customers page: add, edit status, delete.
func TestCustomerLifecycle(t *testing.T) {
	is := is.New(t)
	now := time.Now()
	ana := customer("1", "Ana", now)
	ana.Email = "ana@x.com"

	var c Customers
	c, err := c.Add(ana)
	is.NoErr(err)
	is.Equal(c.Len(), 1)
	is.Equal(c.List()[0].Status, crm.CustomerActive)

	inactive := ana
	inactive.Status = crm.CustomerInactive
	c, err = c.Update(inactive, now.Add(time.Second))
	is.NoErr(err)
	got := c.List()[0]
	is.Equal(got.Status, crm.CustomerInactive)
	is.Equal(got.Name, "Ana")
	is.Equal(got.Email, "ana@x.com")
	is.Equal(got.Phone, "5551234567")
	is.Equal(got.Company, "Acme")

	c, err = c.Delete(ana.ID)
	is.NoErr(err)
	is.Equal(c.Len(), 0)
}
