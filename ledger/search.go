package ledger

import (
	"fmt"
	"strings"

	"lab_loan_tool/models"
)

// SearchField selects which part of a loan Search matches against.
type SearchField string

const (
	FieldRequester SearchField = "requester"
	FieldCustodian SearchField = "custodian"
	FieldEquipment SearchField = "equipment"
	FieldStatus    SearchField = "status"
)

// ParseSearchField defaults to requester, like the search form did.
func ParseSearchField(s string) (SearchField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "requester":
		return FieldRequester, nil
	case "custodian":
		return FieldCustodian, nil
	case "equipment", "equipmentname":
		return FieldEquipment, nil
	case "status":
		return FieldStatus, nil
	}
	return "", fmt.Errorf("%w: unknown search field %q", ErrValidation, s)
}

// Search does a case-insensitive substring match on field. An empty
// criterion returns every record in insertion order.
func (l *Ledger) Search(criterion string, field SearchField) ([]models.LoanRecord, error) {
	switch field {
	case FieldRequester, FieldCustodian, FieldEquipment, FieldStatus:
	default:
		return nil, fmt.Errorf("%w: unknown search field %q", ErrValidation, field)
	}
	needle := strings.ToLower(strings.TrimSpace(criterion))
	var out []models.LoanRecord
	l.view(func(s *models.Snapshot) {
		for _, rec := range s.Loans {
			if needle == "" || matches(rec, field, needle) {
				out = append(out, rec)
			}
		}
	})
	return out, nil
}

func matches(rec models.LoanRecord, field SearchField, needle string) bool {
	contains := func(v string) bool { return strings.Contains(strings.ToLower(v), needle) }
	switch field {
	case FieldRequester:
		return contains(rec.Requester)
	case FieldCustodian:
		return contains(rec.Custodian)
	case FieldStatus:
		return contains(string(rec.Status))
	case FieldEquipment:
		for _, name := range rec.EquipmentNames() {
			if contains(name) {
				return true
			}
		}
	}
	return false
}
