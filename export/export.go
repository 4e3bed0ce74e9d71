// Package export turns ledger projections into flat tables and writes them
// as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"lab_loan_tool/models"

	"github.com/xuri/excelize/v2"
)

// TimeLayout matches the "%Y-%m-%d %H:%M" stamps of the old spreadsheets.
const TimeLayout = "2006-01-02 15:04"

// Sheet is one flat table.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

var loanHeader = []string{
	"ID", "Requester", "Custodian", "Device", "Controller", "Cable", "Headphones",
	"Condition at loan", "Created at", "Returned at", "Received by", "Status",
	"Condition at return", "Notes", "Return notes",
}

func LoansSheet(name string, loans []models.LoanRecord) Sheet {
	s := Sheet{Name: name, Header: loanHeader}
	for _, l := range loans {
		returnedAt := "Pending"
		if l.ReturnedAt != nil {
			returnedAt = l.ReturnedAt.Format(TimeLayout)
		}
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(l.ID),
			l.Requester,
			l.Custodian,
			refName(l.Device),
			refName(l.Controller),
			refName(l.Cable),
			refName(l.Headphones),
			string(l.ConditionAtLoan),
			formatTime(l.CreatedAt),
			returnedAt,
			l.ReceivedBy,
			string(l.Status),
			deref((*string)(l.ConditionAtReturn)),
			l.Notes,
			deref(l.ReturnNotes),
		})
	}
	return s
}

func EquipmentSheet(items []models.EquipmentItem) Sheet {
	s := Sheet{Name: "Equipment", Header: []string{"ID", "Name", "Category", "Availability"}}
	for _, it := range items {
		s.Rows = append(s.Rows, []string{
			strconv.Itoa(it.ID), it.Name, it.Category.Label(), string(it.Availability),
		})
	}
	return s
}

func PartiesSheet(name string, parties []models.Party) Sheet {
	s := Sheet{Name: name, Header: []string{"ID", "Name"}}
	for _, p := range parties {
		s.Rows = append(s.Rows, []string{strconv.Itoa(p.ID), p.Name})
	}
	return s
}

// WorkbookSheets is the full export: loans, equipment and both party lists.
func WorkbookSheets(snap *models.Snapshot) []Sheet {
	return []Sheet{
		LoansSheet("Loans", snap.Loans),
		EquipmentSheet(AllEquipment(snap)),
		PartiesSheet("Requesters", snap.Requesters),
		PartiesSheet("Custodians", snap.Custodians),
	}
}

// AllEquipment flattens the inventory in category order.
func AllEquipment(snap *models.Snapshot) []models.EquipmentItem {
	var items []models.EquipmentItem
	for _, c := range models.Categories {
		items = append(items, snap.Equipment[c]...)
	}
	return items
}

func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("write csv %s: %w", s.Name, err)
	}
	return nil
}

// WriteXLSX writes one worksheet per sheet, in order.
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return err
		}
		if err := writeRow(f, s.Name, 1, s.Header); err != nil {
			return err
		}
		for r, row := range s.Rows {
			if err := writeRow(f, s.Name, r+2, row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func refName(r *models.EquipmentRef) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// FileName builds "<base>_<yyyymmdd_hhmm>.<ext>".
func FileName(base, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", strings.ToLower(base), now.Format("20060102_1504"), ext)
}
