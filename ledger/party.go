package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lab_loan_tool/models"
)

// AddParty appends a requester or custodian. Names are not required to be unique.
func (l *Ledger) AddParty(ctx context.Context, role models.PartyRole, name string) (models.Party, error) {
	name = strings.TrimSpace(name)
	if err := checkRole(role); err != nil {
		return models.Party{}, err
	}
	if name == "" {
		return models.Party{}, fmt.Errorf("%w: %s name is required", ErrValidation, role)
	}
	var p models.Party
	err := l.update(ctx, "add "+string(role), func(t *txn) error {
		p = appendParty(t, role, name)
		return nil
	})
	return p, err
}

// RemoveParty deletes a party unless an active loan names it.
func (l *Ledger) RemoveParty(ctx context.Context, role models.PartyRole, id int, confirmed bool) error {
	if err := checkRole(role); err != nil {
		return err
	}
	return l.update(ctx, "remove "+string(role), func(t *txn) error {
		ps := t.Parties(role)
		idx := slices.IndexFunc(ps, func(p models.Party) bool { return p.ID == id })
		if idx < 0 {
			return fmt.Errorf("%w: %s #%d", ErrNotFound, role, id)
		}
		name := ps[idx].Name
		for _, loan := range t.Loans {
			if loan.IsActive() && partyName(loan, role) == name {
				return fmt.Errorf("%w: %s %q is named by loan #%d", ErrConflict, role, name, loan.ID)
			}
		}
		if !confirmed {
			return ErrConfirmationRequired
		}
		t.SetParties(role, slices.Delete(ps, idx, idx+1))
		t.touch(role.Document())
		return nil
	})
}

// FindOrCreate returns the first party whose name equals name, creating one if none does.
func (l *Ledger) FindOrCreate(ctx context.Context, role models.PartyRole, name string) (models.Party, error) {
	name = strings.TrimSpace(name)
	if err := checkRole(role); err != nil {
		return models.Party{}, err
	}
	if name == "" {
		return models.Party{}, fmt.Errorf("%w: %s name is required", ErrValidation, role)
	}
	var p models.Party
	err := l.update(ctx, "find or create "+string(role), func(t *txn) error {
		p, _ = findOrCreateParty(t, role, name)
		return nil
	})
	return p, err
}

func (l *Ledger) ListParties(role models.PartyRole) ([]models.Party, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	var out []models.Party
	l.view(func(s *models.Snapshot) {
		out = slices.Clone(s.Parties(role))
	})
	return out, nil
}

// SuggestParties returns the parties whose name contains q, ignoring case.
// Used for name autocompletion; an empty q returns the whole list.
func (l *Ledger) SuggestParties(role models.PartyRole, q string) ([]models.Party, error) {
	if err := checkRole(role); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(q))
	var out []models.Party
	l.view(func(s *models.Snapshot) {
		for _, p := range s.Parties(role) {
			if strings.Contains(strings.ToLower(p.Name), needle) {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func checkRole(r models.PartyRole) error {
	if !r.Valid() {
		return fmt.Errorf("%w: unknown party role %q", ErrValidation, r)
	}
	return nil
}

func appendParty(t *txn, role models.PartyRole, name string) models.Party {
	ps := t.Parties(role)
	p := models.Party{
		ID:   nextID(ps, func(p models.Party) int { return p.ID }),
		Name: name,
		Role: role,
	}
	t.SetParties(role, append(ps, p))
	t.touch(role.Document())
	return p
}

// findOrCreateParty 按名字精确匹配，找不到就新建
func findOrCreateParty(t *txn, role models.PartyRole, name string) (models.Party, bool) {
	ps := t.Parties(role)
	if idx := slices.IndexFunc(ps, func(p models.Party) bool { return p.Name == name }); idx >= 0 {
		return ps[idx], false
	}
	return appendParty(t, role, name), true
}

func partyName(loan models.LoanRecord, role models.PartyRole) string {
	if role == models.RoleCustodian {
		return loan.Custodian
	}
	return loan.Requester
}
