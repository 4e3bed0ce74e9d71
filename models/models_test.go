package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab_loan_tool/models"
)

func Test_ParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want models.Category
	}{
		{in: "device", want: models.CategoryDevice},
		{in: "Computadora", want: models.CategoryDevice},
		{in: " controles ", want: models.CategoryController},
		{in: "CABLE", want: models.CategoryCable},
		{in: "Audifonos", want: models.CategoryHeadphones},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := models.ParseCategory(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := models.ParseCategory("printer")
	assert.Error(t, err)
}

func Test_EquipmentItem_DisplayName(t *testing.T) {
	it := models.EquipmentItem{ID: 1, Name: "Laptop-01", Category: models.CategoryDevice}
	assert.Equal(t, "Laptop-01 (Computadora)", it.DisplayName())
	assert.Equal(t, "HDMI (Cable)", models.DisplayName("HDMI", models.CategoryCable))
}

func Test_LoanRecord_Refs(t *testing.T) {
	// setup
	var rec models.LoanRecord
	rec.SetRef(models.CategoryHeadphones, &models.EquipmentRef{ID: 4, Name: "Sony"})
	rec.SetRef(models.CategoryDevice, &models.EquipmentRef{ID: 2, Name: "Laptop-02"})

	// act
	refs := rec.Refs()

	// assert
	require.Len(t, refs, 2)
	assert.Equal(t, models.CategoryDevice, refs[0].Category)
	assert.Equal(t, models.CategoryHeadphones, refs[1].Category)
	assert.True(t, rec.References(models.CategoryHeadphones, 4))
	assert.False(t, rec.References(models.CategoryCable, 4))
	assert.Equal(t, []string{"Laptop-02", "Sony"}, rec.EquipmentNames())
}

func Test_ParseConditions_DefaultToComplete(t *testing.T) {
	lc, err := models.ParseLoanCondition("")
	require.NoError(t, err)
	assert.Equal(t, models.LoanComplete, lc)

	rc, err := models.ParseReturnCondition("incomplete")
	require.NoError(t, err)
	assert.Equal(t, models.ReturnIncomplete, rc)

	_, err = models.ParseReturnCondition("lost")
	assert.Error(t, err)
}

func Test_Snapshot_Clone_IsIndependent(t *testing.T) {
	// setup
	s := models.NewSnapshot()
	s.Equipment[models.CategoryDevice] = []models.EquipmentItem{{ID: 1, Name: "Laptop", Availability: models.Available}}
	s.Requesters = []models.Party{{ID: 1, Name: "Ana"}}

	// act
	c := s.Clone()
	c.Equipment[models.CategoryDevice][0].Availability = models.Loaned
	c.SetParties(models.RoleRequester, append(c.Parties(models.RoleRequester), models.Party{ID: 2, Name: "Bruno"}))

	// assert
	assert.Equal(t, models.Available, s.Equipment[models.CategoryDevice][0].Availability)
	assert.Len(t, s.Requesters, 1)
}

func Test_ParsePartyRole(t *testing.T) {
	r, err := models.ParsePartyRole("Custodians")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustodian, r)
	_, err = models.ParsePartyRole("admins")
	assert.Error(t, err)
}
