// Package seed bulk loads fixture files into the state store.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/state"
	"github.com/td0m/crm/pkg/validate"
	"gopkg.in/yaml.v3"
)

// Data is the fixture file layout.
type Data struct {
	Customers []crm.Customer `json:"customers" yaml:"customers"`
	Tasks     []crm.Task     `json:"tasks" yaml:"tasks"`
	Events    []crm.Event    `json:"events" yaml:"events"`
}

// Read parses a fixture file. Files ending in .json are read as JSON,
// everything else as YAML.
func Read(file string) (*Data, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var d Data
	if strings.EqualFold(filepath.Ext(file), ".json") {
		err = json.Unmarshal(bs, &d)
	} else {
		err = yaml.Unmarshal(bs, &d)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	return &d, nil
}

// Problem is a validation failure of one fixture record.
type Problem struct {
	Kind   string // customer, task, event
	Index  int
	ID     crm.ID
	Errors validate.Errors
}

func (p Problem) String() string {
	return fmt.Sprintf("%s #%d (%s): %s", p.Kind, p.Index, p.ID, p.Errors.Error())
}

// Check validates every record, plus id presence and uniqueness per kind.
func (d *Data) Check() []Problem {
	var out []Problem
	add := func(kind string, i int, id crm.ID, errs validate.Errors, seen map[crm.ID]bool) {
		if id == "" {
			if errs == nil {
				errs = validate.Errors{}
			}
			errs["id"] = "Id is required"
		} else if seen[id] {
			if errs == nil {
				errs = validate.Errors{}
			}
			errs["id"] = "Id is duplicated"
		}
		seen[id] = true
		if errs != nil {
			out = append(out, Problem{Kind: kind, Index: i, ID: id, Errors: errs})
		}
	}
	seen := map[crm.ID]bool{}
	for i, c := range d.Customers {
		add("customer", i, c.ID, validate.Customer(validate.CustomerFormOf(c)), seen)
	}
	seen = map[crm.ID]bool{}
	for i, t := range d.Tasks {
		add("task", i, t.ID, validate.Task(validate.TaskFormOf(t)), seen)
	}
	seen = map[crm.ID]bool{}
	for i, e := range d.Events {
		add("event", i, e.ID, validate.Event(validate.EventFormOf(e)), seen)
	}
	return out
}

// Load replaces the store's collections with d, after checking it. Nothing is
// loaded when any record is invalid.
func Load(s *state.Store, d *Data) error {
	if problems := d.Check(); len(problems) > 0 {
		return &InvalidError{Problems: problems}
	}
	for _, a := range []state.Action{
		state.SetCustomers{Items: d.Customers},
		state.SetTasks{Items: d.Tasks},
		state.SetEvents{Items: d.Events},
	} {
		if err := s.Dispatch(a); err != nil {
			return err
		}
	}
	return nil
}

type InvalidError struct {
	Problems []Problem
}

func (e *InvalidError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("%d invalid records: %s", len(e.Problems), strings.Join(lines, "; "))
}
