package main

import (
	"bytes"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/td0m/crm/pkg/crm"
	"github.com/td0m/crm/pkg/export"
	"github.com/td0m/crm/pkg/persist"
	"github.com/td0m/crm/pkg/state"
)

var total = flag.Int("customers", 50000, "number of synthetic customers")

func main() {
	flag.Parse()
	customers := make([]crm.Customer, *total)
	now := time.Now()
	for i := range customers {
		customers[i] = crm.Customer{
			ID:        crm.NewID(),
			Name:      randomString(12),
			Email:     randomString(8) + "@example.com",
			Phone:     "+1 555 000 0000",
			Company:   "Company " + randomString(3),
			Status:    crm.CustomerStatuses[rand.Intn(len(crm.CustomerStatuses))],
			DealValue: decimal.New(rand.Int63n(10000000), -2),
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	s := state.New(persist.InMemory())
	addTime := measureTime(func() {
		for _, c := range customers[:min(len(customers), 5000)] {
			check(s.Dispatch(state.AddCustomer{Customer: c}))
		}
	})
	setAllTime := measureTime(func() {
		check(s.Dispatch(state.SetCustomers{Items: customers}))
	})

	var csv, xlsx bytes.Buffer
	csvTime := measureTime(func() {
		check(export.WriteCSV(&csv, s.Snapshot().Customers.List()))
	})
	xlsxTime := measureTime(func() {
		check(export.WriteXLSX(&xlsx, s.Snapshot().Customers.List()))
	})

	fmt.Printf("Customers: %d\n", len(customers))
	fmt.Printf("Add time (first %d, one by one): %dms\n", min(len(customers), 5000), addTime.Milliseconds())
	fmt.Printf("Set all time: %dms\n", setAllTime.Milliseconds())
	fmt.Printf("CSV size: %dKB, time: %dms\n", csv.Len()/1024, csvTime.Milliseconds())
	fmt.Printf("XLSX size: %dKB, time: %dms\n", xlsx.Len()/1024, xlsxTime.Milliseconds())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
