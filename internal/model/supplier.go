package model

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ContactPhone = "Phone"
	ContactEmail = "Email"
)

var (
	ErrBlankCode               = errors.New("supplier code is required")
	ErrBlankSupplierName       = errors.New("supplier name is required")
	ErrUnknownContactType      = errors.New("unknown contact type")
	ErrMultipleDefaultContacts = errors.New("supplier has more than one default contact of a type")
	ErrNegativePrice           = errors.New("unit price must not be negative")
)

type Supplier struct {
	ID       int64                 `db:"id" json:"id"`
	Name     string                `db:"name" json:"name"`
	Code     string                `db:"code" json:"code"`
	Contacts []SupplierContact     `db:"-" json:"contacts"`
	Prices   []ProductSupplierInfo `db:"-" json:"prices"`
}

type SupplierContact struct {
	Type      string `db:"type" json:"type"`
	Value     string `db:"value" json:"value"`
	IsDefault bool   `db:"is_default" json:"is_default"`
}

// ProductSupplierInfo is the price a supplier sells an item at.
type ProductSupplierInfo struct {
	ItemID     int64   `db:"item_id" json:"item_id"`
	SupplierID int64   `db:"supplier_id" json:"supplier_id"`
	UnitPrice  float64 `db:"unit_price" json:"unit_price"`
}

// ProductSupplierInventory is how many units of an item a supplier holds.
type ProductSupplierInventory struct {
	ItemID            int64 `db:"item_id" json:"item_id"`
	SupplierID        int64 `db:"supplier_id" json:"supplier_id"`
	AvailableQuantity int   `db:"available_quantity" json:"available_quantity"`
}

func (s Supplier) ToBuilder() *SupplierBuilder {
	b := &SupplierBuilder{s: s}
	b.s.Contacts = append([]SupplierContact(nil), s.Contacts...)
	b.s.Prices = append([]ProductSupplierInfo(nil), s.Prices...)
	return b
}

type SupplierBuilder struct {
	s Supplier
}

func NewSupplierBuilder() *SupplierBuilder {
	return &SupplierBuilder{}
}

func (b *SupplierBuilder) ID(id int64) *SupplierBuilder {
	b.s.ID = id
	return b
}

func (b *SupplierBuilder) Name(name string) *SupplierBuilder {
	b.s.Name = name
	return b
}

func (b *SupplierBuilder) Code(code string) *SupplierBuilder {
	b.s.Code = code
	return b
}

func (b *SupplierBuilder) AddContact(contactType, value string, isDefault bool) *SupplierBuilder {
	b.s.Contacts = append(b.s.Contacts, SupplierContact{Type: contactType, Value: value, IsDefault: isDefault})
	return b
}

func (b *SupplierBuilder) Contacts(contacts []SupplierContact) *SupplierBuilder {
	b.s.Contacts = append([]SupplierContact(nil), contacts...)
	return b
}

func (b *SupplierBuilder) AddPrice(itemID int64, unitPrice float64) *SupplierBuilder {
	b.s.Prices = append(b.s.Prices, ProductSupplierInfo{ItemID: itemID, SupplierID: b.s.ID, UnitPrice: unitPrice})
	return b
}

// Build validates the supplier. At most one contact per type may be flagged
// default; if none is flagged the first contact of that type becomes default.
func (b *SupplierBuilder) Build() (Supplier, error) {
	s := b.s
	s.Name = strings.TrimSpace(s.Name)
	s.Code = strings.TrimSpace(s.Code)
	if s.Code == "" {
		return Supplier{}, ErrBlankCode
	}
	if s.Name == "" {
		return Supplier{}, ErrBlankSupplierName
	}

	contacts := append([]SupplierContact(nil), s.Contacts...)
	hasDefault := map[string]bool{}
	for i := range contacts {
		c := &contacts[i]
		if c.Type != ContactPhone && c.Type != ContactEmail {
			return Supplier{}, fmt.Errorf("%w: %q", ErrUnknownContactType, c.Type)
		}
		if c.IsDefault {
			if hasDefault[c.Type] {
				return Supplier{}, fmt.Errorf("%w: %s", ErrMultipleDefaultContacts, c.Type)
			}
			hasDefault[c.Type] = true
		}
	}
	for i := range contacts {
		c := &contacts[i]
		if !hasDefault[c.Type] {
			c.IsDefault = true
			hasDefault[c.Type] = true
		}
	}
	s.Contacts = contacts

	prices := append([]ProductSupplierInfo(nil), s.Prices...)
	for i := range prices {
		if prices[i].UnitPrice < 0 {
			return Supplier{}, ErrNegativePrice
		}
		prices[i].SupplierID = s.ID
	}
	s.Prices = prices

	return s, nil
}

// DefaultContact returns the default value of the given type, or "".
func (s Supplier) DefaultContact(contactType string) string {
	for _, c := range s.Contacts {
		if c.Type == contactType && c.IsDefault {
			return c.Value
		}
	}
	return ""
}
