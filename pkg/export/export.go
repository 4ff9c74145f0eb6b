// Package export writes the customer table to spreadsheet formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/td0m/crm/pkg/crm"
	"github.com/xuri/excelize/v2"
)

// Header is the first row of every export.
var Header = []string{"Name", "Email", "Company", "Status", "Deal Value"}

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, XLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Write exports customers in table order using the given format.
func Write(w io.Writer, f Format, customers []crm.Customer) error {
	switch f {
	case CSV:
		return WriteCSV(w, customers)
	case XLSX:
		return WriteXLSX(w, customers)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteFile creates name and exports customers into it. A failed close is
// reported like a failed write.
func WriteFile(name string, f Format, customers []crm.Customer) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(file, f, customers)
}

func row(c crm.Customer) []string {
	return []string{c.Name, c.Email, c.Company, string(c.Status), c.DealValue.String()}
}

// WriteCSV writes RFC 4180 CSV: fields holding commas, quotes or newlines are
// quoted and embedded quotes doubled.
func WriteCSV(w io.Writer, customers []crm.Customer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range customers {
		if err := cw.Write(row(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheet = "Customers"

// WriteXLSX writes a single sheet workbook with a bold header row. Deal values
// are stored as float64 numbers so spreadsheets can sum them, which loses
// precision past about 15 significant digits. WriteCSV keeps the exact decimal.
func WriteXLSX(w io.Writer, customers []crm.Customer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(Header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}

	for i, c := range customers {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		value, _ := c.DealValue.Float64()
		r := []interface{}{c.Name, c.Email, c.Company, string(c.Status), value}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "A", "C", 24); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
