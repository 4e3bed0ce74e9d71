package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"lab_loan_tool/models"
)

// AddItem registers a new, available item in its category.
func (l *Ledger) AddItem(ctx context.Context, name string, category models.Category) (models.EquipmentItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.EquipmentItem{}, fmt.Errorf("%w: equipment name is required", ErrValidation)
	}
	if err := checkCategory(category); err != nil {
		return models.EquipmentItem{}, err
	}

	var item models.EquipmentItem
	err := l.update(ctx, "add item", func(t *txn) error {
		items := t.Equipment[category]
		item = models.EquipmentItem{
			ID:           nextID(items, func(it models.EquipmentItem) int { return it.ID }),
			Name:         name,
			Category:     category,
			Availability: models.Available,
		}
		t.Equipment[category] = append(items, item)
		t.touch(category.Document())
		return nil
	})
	return item, err
}

// RemoveItem deletes an item unless an active loan still holds it.
func (l *Ledger) RemoveItem(ctx context.Context, category models.Category, id int, confirmed bool) error {
	if err := checkCategory(category); err != nil {
		return err
	}
	return l.update(ctx, "remove item", func(t *txn) error {
		idx := indexOfItem(t.Snapshot, category, id)
		if idx < 0 {
			return fmt.Errorf("%w: %s #%d", ErrNotFound, category, id)
		}
		for _, loan := range t.Loans {
			if loan.IsActive() && loan.References(category, id) {
				return fmt.Errorf("%w: %s is held by loan #%d",
					ErrConflict, t.Equipment[category][idx].DisplayName(), loan.ID)
			}
		}
		if !confirmed {
			return ErrConfirmationRequired
		}
		t.Equipment[category] = slices.Delete(t.Equipment[category], idx, idx+1)
		t.touch(category.Document())
		return nil
	})
}

// ListAvailable returns the items of a category that can be lent right now.
func (l *Ledger) ListAvailable(category models.Category) ([]models.EquipmentItem, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	var out []models.EquipmentItem
	l.view(func(s *models.Snapshot) {
		for _, it := range s.Equipment[category] {
			if it.IsAvailable() {
				out = append(out, it)
			}
		}
	})
	return out, nil
}

// ListEquipment returns one category, or all of them when category is empty.
func (l *Ledger) ListEquipment(category models.Category) ([]models.EquipmentItem, error) {
	cats := models.Categories
	if category != "" {
		if err := checkCategory(category); err != nil {
			return nil, err
		}
		cats = []models.Category{category}
	}
	var out []models.EquipmentItem
	l.view(func(s *models.Snapshot) {
		for _, c := range cats {
			out = append(out, s.Equipment[c]...)
		}
	})
	return out, nil
}

// FindByDisplayName looks up "{name} ({label})" within a category.
func (l *Ledger) FindByDisplayName(displayName string, category models.Category) (models.EquipmentItem, bool) {
	var (
		item  models.EquipmentItem
		found bool
	)
	l.view(func(s *models.Snapshot) {
		if idx := indexOfDisplayName(s, category, displayName); idx >= 0 {
			item, found = s.Equipment[category][idx], true
		}
	})
	return item, found
}

func checkCategory(c models.Category) error {
	if c == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, c)
	}
	return nil
}

func indexOfItem(s *models.Snapshot, c models.Category, id int) int {
	return slices.IndexFunc(s.Equipment[c], func(it models.EquipmentItem) bool { return it.ID == id })
}

func indexOfDisplayName(s *models.Snapshot, c models.Category, displayName string) int {
	displayName = strings.TrimSpace(displayName)
	return slices.IndexFunc(s.Equipment[c], func(it models.EquipmentItem) bool {
		return it.DisplayName() == displayName
	})
}

// setAvailability flips one item; a missing item is skipped.
func setAvailability(t *txn, c models.Category, id int, a models.Availability) {
	idx := indexOfItem(t.Snapshot, c, id)
	if idx < 0 {
		return
	}
	t.Equipment[c][idx].Availability = a
	t.touch(c.Document())
}
