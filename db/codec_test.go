package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab_loan_tool/db"
	"lab_loan_tool/models"
)

func Test_EncodeDocument_EmptyCollectionIsArray(t *testing.T) {
	b, err := db.EncodeDocument(models.NewSnapshot(), models.DocLoans)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func Test_DecodeDocument_FillsDerivedFields(t *testing.T) {
	// setup
	s := models.NewSnapshot()
	devices := []byte(`[{"id": 3, "name": "Laptop-03"}]`)
	custodians := []byte(`[{"id": 1, "name": "Luis"}]`)

	// act
	require.NoError(t, db.DecodeDocument(s, models.DocDevices, devices))
	require.NoError(t, db.DecodeDocument(s, models.DocCustodians, custodians))
	require.NoError(t, db.DecodeDocument(s, models.DocLoans, []byte("  ")))

	// assert
	require.Len(t, s.Equipment[models.CategoryDevice], 1)
	item := s.Equipment[models.CategoryDevice][0]
	assert.Equal(t, models.CategoryDevice, item.Category)
	assert.Equal(t, models.Available, item.Availability)
	require.Len(t, s.Custodians, 1)
	assert.Equal(t, models.RoleCustodian, s.Custodians[0].Role)
	assert.Empty(t, s.Loans)
}

func Test_DecodeDocument_UnknownDocument(t *testing.T) {
	err := db.DecodeDocument(models.NewSnapshot(), "printers", []byte(`[]`))
	assert.ErrorContains(t, err, "unknown document")
}
