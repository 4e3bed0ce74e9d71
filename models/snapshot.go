package models

import "slices"

// Document names one persisted collection.
type Document string

const (
	DocLoans       Document = "loans"
	DocDevices     Document = "devices"
	DocControllers Document = "controllers"
	DocCables      Document = "cables"
	DocHeadphones  Document = "headphones"
	DocRequesters  Document = "requesters"
	DocCustodians  Document = "custodians"
	DocReturnNotes Document = "return_notes"
)

// Documents in load/save order.
var Documents = []Document{
	DocLoans, DocDevices, DocControllers, DocCables, DocHeadphones,
	DocRequesters, DocCustodians, DocReturnNotes,
}

// Snapshot holds every collection of the system.
type Snapshot struct {
	Loans       []LoanRecord
	Equipment   map[Category][]EquipmentItem
	Requesters  []Party
	Custodians  []Party
	ReturnNotes []ReturnNote
}

func NewSnapshot() *Snapshot {
	s := &Snapshot{Equipment: make(map[Category][]EquipmentItem, len(Categories))}
	for _, c := range Categories {
		s.Equipment[c] = []EquipmentItem{}
	}
	return s
}

// Clone copies every slice. Records are values, so a shallow element copy is enough.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Loans:       slices.Clone(s.Loans),
		Equipment:   make(map[Category][]EquipmentItem, len(s.Equipment)),
		Requesters:  slices.Clone(s.Requesters),
		Custodians:  slices.Clone(s.Custodians),
		ReturnNotes: slices.Clone(s.ReturnNotes),
	}
	for c, items := range s.Equipment {
		out.Equipment[c] = slices.Clone(items)
	}
	return out
}

// Parties returns the list for a role.
func (s *Snapshot) Parties(r PartyRole) []Party {
	if r == RoleCustodian {
		return s.Custodians
	}
	return s.Requesters
}

func (s *Snapshot) SetParties(r PartyRole, ps []Party) {
	if r == RoleCustodian {
		s.Custodians = ps
		return
	}
	s.Requesters = ps
}
