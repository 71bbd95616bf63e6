package model

import (
	"errors"
	"testing"
)

func TestProductBuilderPromotesFirstImage(t *testing.T) {
	p, err := NewProductBuilder().
		Name(" Cola ").SKU("SKU-1").
		AddImage("content://img/1", false).
		AddImage("content://img/2", false).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Name != "Cola" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if !p.Images[0].IsDefault || p.Images[1].IsDefault {
		t.Fatalf("expected first image default, got %+v", p.Images)
	}
	if p.DefaultImage() != "content://img/1" {
		t.Errorf("DefaultImage = %q", p.DefaultImage())
	}
}

func TestProductBuilderRejects(t *testing.T) {
	tests := []struct {
		name string
		b    *ProductBuilder
		want error
	}{
		{"blank sku", NewProductBuilder().Name("x"), ErrBlankSKU},
		{"blank name", NewProductBuilder().SKU("s"), ErrBlankName},
		{"two defaults", NewProductBuilder().Name("x").SKU("s").AddImage("a", true).AddImage("b", true), ErrMultipleDefaults},
		{"dup attr", NewProductBuilder().Name("x").SKU("s").AddAttribute("size", "L").AddAttribute("size", "M"), ErrDuplicateAttribute},
		{"dup image", NewProductBuilder().Name("x").SKU("s").AddImage("a", false).AddImage("a", false), ErrDuplicateImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.b.Build(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestProductToBuilderDoesNotAlias(t *testing.T) {
	p, err := NewProductBuilder().Name("x").SKU("s").AddAttribute("a", "1").Build()
	if err != nil {
		t.Fatal(err)
	}
	q, err := p.ToBuilder().AddAttribute("b", "2").Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Attributes) != 1 || len(q.Attributes) != 2 {
		t.Fatalf("rebuild mutated original: %v / %v", p.Attributes, q.Attributes)
	}
}

func TestProductRecords(t *testing.T) {
	p, _ := NewProductBuilder().ID(7).Name("x").SKU("s").
		AddImage("a", false).AddImage("b", true).
		AddAttribute("color", "red").Build()
	cat := int64(3)
	item, images, attrs := p.Records(&cat)
	if item.ID != 7 || *item.CategoryID != 3 {
		t.Fatalf("item %+v", item)
	}
	if len(images) != 2 || images[1].Position != 1 || !images[1].IsDefault || images[0].IsDefault {
		t.Fatalf("images %+v", images)
	}
	if len(attrs) != 1 || attrs[0].ItemID != 7 {
		t.Fatalf("attrs %+v", attrs)
	}
}

func TestSupplierBuilderDefaults(t *testing.T) {
	s, err := NewSupplierBuilder().ID(4).Name("Acme").Code("ACM").
		AddContact(ContactPhone, "+1 555", false).
		AddContact(ContactPhone, "+1 556", true).
		AddContact(ContactPhone, "+1 557", false).
		AddContact(ContactEmail, "a@acme.test", false).
		AddPrice(9, 1.5).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.DefaultContact(ContactPhone) != "+1 556" {
		t.Errorf("default phone = %q", s.DefaultContact(ContactPhone))
	}
	if s.Contacts[0].IsDefault || s.Contacts[2].IsDefault {
		t.Errorf("only the flagged phone should be default: %+v", s.Contacts)
	}
	if s.DefaultContact(ContactEmail) != "a@acme.test" {
		t.Errorf("sole email should become default")
	}
	if s.Prices[0].SupplierID != 4 {
		t.Errorf("price supplier id = %d", s.Prices[0].SupplierID)
	}
}

func TestSupplierBuilderRejects(t *testing.T) {
	if _, err := NewSupplierBuilder().Name("x").Build(); !errors.Is(err, ErrBlankCode) {
		t.Errorf("got %v", err)
	}
	if _, err := NewSupplierBuilder().Code("c").Build(); !errors.Is(err, ErrBlankSupplierName) {
		t.Errorf("got %v", err)
	}
	if _, err := NewSupplierBuilder().Name("x").Code("c").AddContact("Fax", "1", true).Build(); !errors.Is(err, ErrUnknownContactType) {
		t.Errorf("got %v", err)
	}
	if _, err := NewSupplierBuilder().Name("x").Code("c").AddPrice(1, -1).Build(); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("got %v", err)
	}
	_, err := NewSupplierBuilder().Name("x").Code("c").
		AddContact(ContactEmail, "a@x.test", true).
		AddContact(ContactPhone, "+1 555", true).
		AddContact(ContactEmail, "b@x.test", true).
		Build()
	if !errors.Is(err, ErrMultipleDefaultContacts) {
		t.Errorf("two default emails: %v", err)
	}
}
