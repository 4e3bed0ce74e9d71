package db

import (
	"bytes"
	"fmt"

	"lab_loan_tool/models"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeDocument renders one collection of s as an indented JSON array.
func EncodeDocument(s *models.Snapshot, d models.Document) ([]byte, error) {
	var v any
	switch d {
	case models.DocLoans:
		v = nonNil(s.Loans)
	case models.DocDevices, models.DocControllers, models.DocCables, models.DocHeadphones:
		v = nonNil(s.Equipment[categoryOf(d)])
	case models.DocRequesters:
		v = nonNil(s.Requesters)
	case models.DocCustodians:
		v = nonNil(s.Custodians)
	case models.DocReturnNotes:
		v = nonNil(s.ReturnNotes)
	default:
		return nil, fmt.Errorf("unknown document %q", d)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", d, err)
	}
	return b, nil
}

// DecodeDocument fills the collection d of s from data. Empty data is an empty collection.
func DecodeDocument(s *models.Snapshot, d models.Document, data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var err error
	switch d {
	case models.DocLoans:
		err = json.Unmarshal(data, &s.Loans)
	case models.DocDevices, models.DocControllers, models.DocCables, models.DocHeadphones:
		c := categoryOf(d)
		var items []models.EquipmentItem
		if err = json.Unmarshal(data, &items); err == nil {
			for i := range items {
				items[i].Category = c
				if items[i].Availability == "" {
					items[i].Availability = models.Available
				}
			}
			s.Equipment[c] = items
		}
	case models.DocRequesters, models.DocCustodians:
		role := models.RoleRequester
		if d == models.DocCustodians {
			role = models.RoleCustodian
		}
		var ps []models.Party
		if err = json.Unmarshal(data, &ps); err == nil {
			for i := range ps {
				ps[i].Role = role
			}
			s.SetParties(role, ps)
		}
	case models.DocReturnNotes:
		err = json.Unmarshal(data, &s.ReturnNotes)
	default:
		return fmt.Errorf("unknown document %q", d)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", d, err)
	}
	return nil
}

func encodeAll(s *models.Snapshot, docs []models.Document) (map[models.Document][]byte, error) {
	if len(docs) == 0 {
		docs = models.Documents
	}
	out := make(map[models.Document][]byte, len(docs))
	for _, d := range docs {
		b, err := EncodeDocument(s, d)
		if err != nil {
			return nil, err
		}
		out[d] = b
	}
	return out, nil
}

func categoryOf(d models.Document) models.Category {
	for _, c := range models.Categories {
		if c.Document() == d {
			return c
		}
	}
	return ""
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
