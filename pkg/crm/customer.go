package crm

import (
	"time"

	"github.com/shopspring/decimal"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerPending  CustomerStatus = "pending"
)

var CustomerStatuses = []CustomerStatus{CustomerActive, CustomerInactive, CustomerPending}

func (s CustomerStatus) Valid() bool {
	return oneOf(s, CustomerStatuses)
}

// Source is the channel a customer was acquired through.
type Source string

const (
	SourceWebsite  Source = "website"
	SourceReferral Source = "referral"
	SourceSocial   Source = "social"
	SourceEmail    Source = "email"
	SourcePhone    Source = "phone"
	SourceOther    Source = "other"
)

var Sources = []Source{SourceWebsite, SourceReferral, SourceSocial, SourceEmail, SourcePhone, SourceOther}

type Address struct {
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	ZipCode string `json:"zipCode" yaml:"zipCode"`
	Country string `json:"country" yaml:"country"`
}

type Customer struct {
	ID      ID             `json:"id" yaml:"id"`
	Name    string         `json:"name" yaml:"name"`
	Email   string         `json:"email" yaml:"email"`
	Phone   string         `json:"phone" yaml:"phone"`
	Company string         `json:"company" yaml:"company"`
	Status  CustomerStatus `json:"status" yaml:"status"`

	DealValue   decimal.Decimal `json:"dealValue" yaml:"dealValue"`
	Source      Source          `json:"source,omitempty" yaml:"source,omitempty"`
	Address     *Address        `json:"address,omitempty" yaml:"address,omitempty"`
	Notes       string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	LastContact *time.Time      `json:"lastContact,omitempty" yaml:"lastContact,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func (c Customer) Key() ID            { return c.ID }
func (c Customer) Created() time.Time { return c.CreatedAt }
func (c Customer) Updated() time.Time { return c.UpdatedAt }

// Stamp returns a copy of c with both timestamps replaced.
func (c Customer) Stamp(created, updated time.Time) Customer {
	c.CreatedAt, c.UpdatedAt = created, updated
	return c
}

func oneOf[T comparable](v T, all []T) bool {
	for _, a := range all {
		if a == v {
			return true
		}
	}
	return false
}
