package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lab_loan_tool/export"
	"lab_loan_tool/models"
)

func snapshotWithLoans() *models.Snapshot {
	s := models.NewSnapshot()
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	returned := created.Add(90 * time.Minute)
	s.Equipment[models.CategoryDevice] = []models.EquipmentItem{
		{ID: 1, Name: "Laptop-01", Category: models.CategoryDevice, Availability: models.Loaned},
	}
	s.Equipment[models.CategoryHeadphones] = []models.EquipmentItem{
		{ID: 1, Name: "Sony", Category: models.CategoryHeadphones, Availability: models.Available},
	}
	s.Requesters = []models.Party{{ID: 1, Name: "Ana"}}
	s.Custodians = []models.Party{{ID: 1, Name: "Luis"}}
	s.Loans = []models.LoanRecord{
		{
			ID: 1, Requester: "Ana", Custodian: "Luis",
			Device:          &models.EquipmentRef{ID: 1, Name: "Laptop-01"},
			ConditionAtLoan: models.LoanComplete, CreatedAt: created, Status: models.StatusLoaned,
		},
		{
			ID: 2, Requester: "Ana", Custodian: "Luis",
			Headphones:      &models.EquipmentRef{ID: 1, Name: "Sony"},
			ConditionAtLoan: models.LoanComplete, CreatedAt: created,
			ReturnedAt: &returned, ReceivedBy: "Luis", Status: models.StatusReturned,
		},
	}
	return s
}

func Test_WriteCSV_LoansSheet(t *testing.T) {
	// setup
	snap := snapshotWithLoans()
	var buf bytes.Buffer

	// act
	err := export.WriteCSV(&buf, export.LoansSheet("Loans", snap.Loans))

	// assert
	require.NoError(t, err)
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Requester", rows[0][1])
	assert.Equal(t, []string{"1", "Ana", "Luis", "Laptop-01", "", "", ""}, rows[1][:7])
	assert.Equal(t, "2024-03-01 10:30", rows[1][8])
	assert.Equal(t, "Pending", rows[1][9])
	assert.Equal(t, "2024-03-01 12:00", rows[2][9])
	assert.Equal(t, "Sony", rows[2][6])
}

func Test_WriteXLSX_Workbook(t *testing.T) {
	// setup
	var buf bytes.Buffer

	// act
	err := export.WriteXLSX(&buf, export.WorkbookSheets(snapshotWithLoans())...)

	// assert
	require.NoError(t, err)
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Loans", "Equipment", "Requesters", "Custodians"}, f.GetSheetList())

	loans, err := f.GetRows("Loans")
	require.NoError(t, err)
	require.Len(t, loans, 3)
	assert.Equal(t, "ID", loans[0][0])
	assert.Equal(t, "Laptop-01", loans[1][3])

	equipment, err := f.GetRows("Equipment")
	require.NoError(t, err)
	require.Len(t, equipment, 3)
	assert.Equal(t, []string{"1", "Laptop-01", "Computadora", "Loaned"}, equipment[1])
	assert.Equal(t, []string{"1", "Sony", "Audifonos", "Available"}, equipment[2])
}

func Test_WriteXLSX_NoSheets(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, export.WriteXLSX(&buf))
}

func Test_FileName(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "active_loans_20240301_0905.csv", export.FileName("Active_Loans", "csv", now))
}
