// models/loan.go
package models

import (
	"fmt"
	"strings"
	"time"
)

type LoanStatus string

const (
	StatusLoaned   LoanStatus = "Loaned"
	StatusReturned LoanStatus = "Returned"
)

// LoanCondition 借出时配件是否齐全
type LoanCondition string

const (
	LoanComplete LoanCondition = "Complete"
	LoanMissing  LoanCondition = "Missing"
)

// ParseLoanCondition maps "" to Complete, the form default.
func ParseLoanCondition(s string) (LoanCondition, error) {
	switch {
	case s == "", strings.EqualFold(s, string(LoanComplete)):
		return LoanComplete, nil
	case strings.EqualFold(s, string(LoanMissing)):
		return LoanMissing, nil
	}
	return "", fmt.Errorf("unknown loan condition %q", s)
}

// ReturnCondition 归还时是否完整
type ReturnCondition string

const (
	ReturnComplete   ReturnCondition = "Complete"
	ReturnIncomplete ReturnCondition = "Incomplete"
)

func ParseReturnCondition(s string) (ReturnCondition, error) {
	switch {
	case s == "", strings.EqualFold(s, string(ReturnComplete)):
		return ReturnComplete, nil
	case strings.EqualFold(s, string(ReturnIncomplete)):
		return ReturnIncomplete, nil
	}
	return "", fmt.Errorf("unknown return condition %q", s)
}

// EquipmentRef points at an item by its stable id. Name is the item name at
// loan time, kept for display and search.
type EquipmentRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CategoryRef is an EquipmentRef together with the category it lives in.
type CategoryRef struct {
	Category Category
	EquipmentRef
}

// LoanRecord is treated as a value: updates replace the record, pointer
// fields are never written through.
type LoanRecord struct {
	ID         int           `json:"id"`
	Requester  string        `json:"requester"`
	Custodian  string        `json:"custodian"`
	Device     *EquipmentRef `json:"device,omitempty"`
	Controller *EquipmentRef `json:"controller,omitempty"`
	Cable      *EquipmentRef `json:"cable,omitempty"`
	Headphones *EquipmentRef `json:"headphones,omitempty"`

	ConditionAtLoan LoanCondition `json:"conditionAtLoan"`
	CreatedAt       time.Time     `json:"createdAt"`
	ReturnedAt      *time.Time    `json:"returnedAt,omitempty"`
	ReceivedBy      string        `json:"receivedBy"`
	Status          LoanStatus    `json:"status"`

	ConditionAtReturn *ReturnCondition `json:"conditionAtReturn,omitempty"`
	Notes             string           `json:"notes"`
	ReturnNotes       *string          `json:"returnNotes,omitempty"`
}

func (l LoanRecord) IsActive() bool { return l.Status == StatusLoaned }

// Ref returns the reference held for a category, or nil.
func (l LoanRecord) Ref(c Category) *EquipmentRef {
	switch c {
	case CategoryDevice:
		return l.Device
	case CategoryController:
		return l.Controller
	case CategoryCable:
		return l.Cable
	case CategoryHeadphones:
		return l.Headphones
	}
	return nil
}

// SetRef stores ref under the category slot.
func (l *LoanRecord) SetRef(c Category, ref *EquipmentRef) {
	switch c {
	case CategoryDevice:
		l.Device = ref
	case CategoryController:
		l.Controller = ref
	case CategoryCable:
		l.Cable = ref
	case CategoryHeadphones:
		l.Headphones = ref
	}
}

// Refs lists the non-empty references in category order.
func (l LoanRecord) Refs() []CategoryRef {
	var out []CategoryRef
	for _, c := range Categories {
		if r := l.Ref(c); r != nil {
			out = append(out, CategoryRef{Category: c, EquipmentRef: *r})
		}
	}
	return out
}

func (l LoanRecord) References(c Category, itemID int) bool {
	r := l.Ref(c)
	return r != nil && r.ID == itemID
}

func (l LoanRecord) EquipmentNames() []string {
	refs := l.Refs()
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names
}
