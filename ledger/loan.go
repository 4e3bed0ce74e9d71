package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lab_loan_tool/models"
)

// Selection picks one item of a category, by id or by display name.
// ItemID wins when both are set.
type Selection struct {
	ItemID      int    `json:"itemId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

func (s Selection) IsEmpty() bool {
	return s.ItemID <= 0 && strings.TrimSpace(s.DisplayName) == ""
}

func (s Selection) String() string {
	if s.ItemID > 0 {
		return fmt.Sprintf("#%d", s.ItemID)
	}
	return fmt.Sprintf("%q", s.DisplayName)
}

// Selections holds at most one Selection per category.
type Selections map[models.Category]Selection

type RegisterLoanInput struct {
	Requester  string
	Custodian  string
	Selections Selections
	Condition  models.LoanCondition
	Notes      string
}

type ReturnLoanInput struct {
	LoanID     int
	ReceivedBy string
	Condition  models.ReturnCondition
	Notes      string
	Confirmed  bool
}

// RegisterLoan hands the selected items to a requester.
//
// Unknown requester and custodian names are created on the fly. Every selected
// item must exist and be available; at least one item is required. On any
// failure nothing changes, including the parties that would have been created.
func (l *Ledger) RegisterLoan(ctx context.Context, in RegisterLoanInput) (models.LoanRecord, error) {
	requester := strings.TrimSpace(in.Requester)
	custodian := strings.TrimSpace(in.Custodian)
	if requester == "" {
		return models.LoanRecord{}, fmt.Errorf("%w: requester is required", ErrValidation)
	}
	if custodian == "" {
		return models.LoanRecord{}, fmt.Errorf("%w: custodian is required", ErrValidation)
	}
	cond, err := models.ParseLoanCondition(string(in.Condition))
	if err != nil {
		return models.LoanRecord{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	for c := range in.Selections {
		if err := checkCategory(c); err != nil {
			return models.LoanRecord{}, err
		}
	}

	var (
		rec     models.LoanRecord
		created []models.Party
	)
	err = l.update(ctx, "register loan", func(t *txn) error {
		created = created[:0]
		for _, np := range []struct {
			role models.PartyRole
			name string
		}{{models.RoleRequester, requester}, {models.RoleCustodian, custodian}} {
			if p, isNew := findOrCreateParty(t, np.role, np.name); isNew {
				created = append(created, p)
			}
		}

		type pick struct {
			category models.Category
			idx      int
		}
		var picks []pick
		for _, c := range models.Categories {
			sel, ok := in.Selections[c]
			if !ok || sel.IsEmpty() {
				continue
			}
			idx := resolveSelection(t.Snapshot, c, sel)
			if idx < 0 {
				return fmt.Errorf("%w: %s %s", ErrNotFound, c, sel)
			}
			if item := t.Equipment[c][idx]; !item.IsAvailable() {
				return fmt.Errorf("%w: %s is %s", ErrUnavailable, item.DisplayName(), item.Availability)
			}
			picks = append(picks, pick{category: c, idx: idx})
		}
		if len(picks) == 0 {
			return fmt.Errorf("%w: at least one equipment item must be selected", ErrValidation)
		}

		rec = models.LoanRecord{
			ID:              nextID(t.Loans, func(r models.LoanRecord) int { return r.ID }),
			Requester:       requester,
			Custodian:       custodian,
			ConditionAtLoan: cond,
			CreatedAt:       t.now,
			Status:          models.StatusLoaned,
			Notes:           strings.TrimSpace(in.Notes),
		}
		for _, p := range picks {
			item := &t.Equipment[p.category][p.idx]
			item.Availability = models.Loaned
			rec.SetRef(p.category, &models.EquipmentRef{ID: item.ID, Name: item.Name})
			t.touch(p.category.Document())
		}
		t.Loans = append(t.Loans, rec)
		t.touch(models.DocLoans)
		return nil
	})
	if err != nil {
		return models.LoanRecord{}, err
	}
	for _, p := range created {
		l.logInfo("party created from loan", "role", p.Role, "id", p.ID, "name", p.Name, "loan", rec.ID)
	}
	return rec, nil
}

// ReturnLoan closes an open loan and releases its equipment.
func (l *Ledger) ReturnLoan(ctx context.Context, in ReturnLoanInput) (models.LoanRecord, error) {
	var rec models.LoanRecord
	err := l.update(ctx, "return loan", func(t *txn) error {
		idx := indexOfLoan(t.Snapshot, in.LoanID)
		if idx < 0 {
			return fmt.Errorf("%w: loan #%d", ErrNotFound, in.LoanID)
		}
		rec = t.Loans[idx]
		if !rec.IsActive() {
			return fmt.Errorf("%w: loan #%d", ErrAlreadyReturned, rec.ID)
		}
		receivedBy := strings.TrimSpace(in.ReceivedBy)
		if receivedBy == "" {
			return fmt.Errorf("%w: receivedBy is required", ErrValidation)
		}
		cond, err := models.ParseReturnCondition(string(in.Condition))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
		if !in.Confirmed {
			return ErrConfirmationRequired
		}

		now := t.now
		rec.ReturnedAt = &now
		rec.ReceivedBy = receivedBy
		rec.Status = models.StatusReturned
		rec.ConditionAtReturn = &cond
		if cond == models.ReturnIncomplete {
			notes := strings.TrimSpace(in.Notes)
			rec.ReturnNotes = &notes
			t.ReturnNotes = append(t.ReturnNotes, models.ReturnNote{
				ID:         l.newID(),
				LoanID:     rec.ID,
				RecordedAt: now,
				Notes:      notes,
			})
			t.touch(models.DocReturnNotes)
		}
		releaseEquipment(t, rec)
		t.Loans[idx] = rec
		t.touch(models.DocLoans)
		return nil
	})
	if err != nil {
		return models.LoanRecord{}, err
	}
	return rec, nil
}

// DeleteLoan removes a record, releasing its equipment first if it is still open.
func (l *Ledger) DeleteLoan(ctx context.Context, id int, confirmed bool) error {
	return l.update(ctx, "delete loan", func(t *txn) error {
		idx := indexOfLoan(t.Snapshot, id)
		if idx < 0 {
			return fmt.Errorf("%w: loan #%d", ErrNotFound, id)
		}
		if !confirmed {
			return ErrConfirmationRequired
		}
		if rec := t.Loans[idx]; rec.IsActive() {
			releaseEquipment(t, rec)
		}
		t.Loans = slices.Delete(t.Loans, idx, idx+1)
		t.touch(models.DocLoans)
		return nil
	})
}

func (l *Ledger) GetLoan(id int) (models.LoanRecord, error) {
	var (
		rec models.LoanRecord
		ok  bool
	)
	l.view(func(s *models.Snapshot) {
		if idx := indexOfLoan(s, id); idx >= 0 {
			rec, ok = s.Loans[idx], true
		}
	})
	if !ok {
		return models.LoanRecord{}, fmt.Errorf("%w: loan #%d", ErrNotFound, id)
	}
	return rec, nil
}

// ListLoans returns every record in insertion order.
func (l *Ledger) ListLoans() []models.LoanRecord {
	var out []models.LoanRecord
	l.view(func(s *models.Snapshot) { out = slices.Clone(s.Loans) })
	return out
}

// ActiveLoans returns the records still in the Loaned state.
func (l *Ledger) ActiveLoans() []models.LoanRecord {
	var out []models.LoanRecord
	l.view(func(s *models.Snapshot) {
		for _, rec := range s.Loans {
			if rec.IsActive() {
				out = append(out, rec)
			}
		}
	})
	return out
}

// ReturnNotes lists the incomplete-return log, for one loan when loanID > 0.
func (l *Ledger) ReturnNotes(loanID int) []models.ReturnNote {
	var out []models.ReturnNote
	l.view(func(s *models.Snapshot) {
		for _, n := range s.ReturnNotes {
			if loanID <= 0 || n.LoanID == loanID {
				out = append(out, n)
			}
		}
	})
	return out
}

func resolveSelection(s *models.Snapshot, c models.Category, sel Selection) int {
	if sel.ItemID > 0 {
		return indexOfItem(s, c, sel.ItemID)
	}
	return indexOfDisplayName(s, c, sel.DisplayName)
}

func indexOfLoan(s *models.Snapshot, id int) int {
	return slices.IndexFunc(s.Loans, func(r models.LoanRecord) bool { return r.ID == id })
}

// releaseEquipment marks every item the record holds as available, by id.
func releaseEquipment(t *txn, rec models.LoanRecord) {
	for _, ref := range rec.Refs() {
		setAvailability(t, ref.Category, ref.ID, models.Available)
	}
}
