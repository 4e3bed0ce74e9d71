// models/equipment.go
package models

import (
	"fmt"
	"strings"
)

// Category 设备分类，同时决定存储文档与 id 作用域
type Category string

const (
	CategoryDevice     Category = "device"
	CategoryController Category = "controller"
	CategoryCable      Category = "cable"
	CategoryHeadphones Category = "headphones"
)

// Categories in display order.
var Categories = []Category{CategoryDevice, CategoryController, CategoryCable, CategoryHeadphones}

var categoryLabels = map[Category]string{
	CategoryDevice:     "Computadora",
	CategoryController: "Controles",
	CategoryCable:      "Cable",
	CategoryHeadphones: "Audifonos",
}

// Label is the name shown to users, e.g. in "Laptop-01 (Computadora)".
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Document is the persisted collection holding items of this category.
func (c Category) Document() Document {
	switch c {
	case CategoryDevice:
		return DocDevices
	case CategoryController:
		return DocControllers
	case CategoryCable:
		return DocCables
	case CategoryHeadphones:
		return DocHeadphones
	}
	return ""
}

// ParseCategory accepts either the key ("device") or the label ("Computadora").
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, c.Label()) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

type Availability string

const (
	Available Availability = "Available"
	Loaned    Availability = "Loaned"
)

type EquipmentItem struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	Category     Category     `json:"category"`
	Availability Availability `json:"availability"`
}

func (it EquipmentItem) DisplayName() string {
	return DisplayName(it.Name, it.Category)
}

func (it EquipmentItem) IsAvailable() bool { return it.Availability == Available }

func DisplayName(name string, c Category) string {
	return fmt.Sprintf("%s (%s)", name, c.Label())
}
