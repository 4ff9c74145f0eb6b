package seed

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/persist"
	"github.com/td0m/crm/pkg/state"
)

func TestRead_YAML(t *testing.T) {
	d, err := Read("testdata/crm.yaml")
	require.NoError(t, err)
	require.Len(t, d.Customers, 2)
	assert.Equal(t, "Ana Lima", d.Customers[0].Name)
	assert.True(t, d.Customers[0].DealValue.Equal(decimal.RequireFromString("1200.50")))
	assert.Equal(t, []string{"vip"}, d.Customers[0].Tags)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, crm.TaskInProgress, d.Tasks[0].Status)
	require.NotNil(t, d.Tasks[0].DueDate)
	require.Len(t, d.Events, 1)
	assert.Equal(t, 10, d.Events[0].Reminders[0].Minutes)
	assert.Empty(t, d.Check())
}

func TestLoad(t *testing.T) {
	d, err := Read("testdata/crm.yaml")
	require.NoError(t, err)

	s := state.New(persist.InMemory())
	require.NoError(t, Load(s, d))
	snap := s.Snapshot()
	assert.Equal(t, 2, snap.Customers.Len())
	assert.Equal(t, 1, snap.Tasks.Len())
	assert.Equal(t, 1, snap.Events.Len())
	assert.Equal(t, "Ana Lima", snap.CustomerName(d.Tasks[0].CustomerID))
}

func TestLoad_Invalid(t *testing.T) {
	d, err := Read("testdata/invalid.json")
	require.NoError(t, err)

	problems := d.Check()
	require.Len(t, problems, 3)
	assert.Equal(t, "customer", problems[0].Kind)
	assert.Contains(t, problems[0].Errors, "name")
	assert.Contains(t, problems[0].Errors, "email")
	assert.Equal(t, "Id is duplicated", problems[1].Errors["id"])
	assert.Equal(t, "event", problems[2].Kind)
	assert.Contains(t, problems[2].Errors, "end")

	s := state.New(persist.InMemory())
	err = Load(s, d)
	var invalid *InvalidError
	require.True(t, errors.As(err, &invalid))
	assert.Len(t, invalid.Problems, 3)
	assert.Equal(t, 0, s.Snapshot().Customers.Len())
}

func TestRead_Missing(t *testing.T) {
	_, err := Read("testdata/nope.yaml")
	assert.Error(t, err)
}
