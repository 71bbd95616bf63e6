package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBlankSKU           = errors.New("product sku is required")
	ErrBlankName          = errors.New("product name is required")
	ErrMultipleDefaults   = errors.New("product has more than one default image")
	ErrDuplicateAttribute = errors.New("product attribute names must be unique")
	ErrDuplicateImage     = errors.New("product image uris must be unique")
)

// Product is a sellable item. Values are built with ProductBuilder and
// replaced, not mutated, when edited.
type Product struct {
	ID          int64              `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	SKU         string             `db:"sku" json:"sku"`
	Description string             `db:"description" json:"description"`
	Category    string             `db:"category" json:"category"`
	Images      []ProductImage     `db:"-" json:"images"`
	Attributes  []ProductAttribute `db:"-" json:"attributes"`
}

type ProductImage struct {
	ImageURI  string `db:"image_uri" json:"image_uri"`
	IsDefault bool   `db:"is_default" json:"is_default"`
}

type ProductAttribute struct {
	Name  string `db:"attr_name" json:"name"`
	Value string `db:"attr_value" json:"value"`
}

// DefaultImage returns the default image URI, or "" when the product has no images.
func (p Product) DefaultImage() string {
	for _, img := range p.Images {
		if img.IsDefault {
			return img.ImageURI
		}
	}
	return ""
}

// ToBuilder starts a new builder seeded with a copy of p.
func (p Product) ToBuilder() *ProductBuilder {
	b := &ProductBuilder{p: p}
	b.p.Images = append([]ProductImage(nil), p.Images...)
	b.p.Attributes = append([]ProductAttribute(nil), p.Attributes...)
	return b
}

type ProductBuilder struct {
	p Product
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

func (b *ProductBuilder) ID(id int64) *ProductBuilder {
	b.p.ID = id
	return b
}

func (b *ProductBuilder) Name(name string) *ProductBuilder {
	b.p.Name = name
	return b
}

func (b *ProductBuilder) SKU(sku string) *ProductBuilder {
	b.p.SKU = sku
	return b
}

func (b *ProductBuilder) Description(desc string) *ProductBuilder {
	b.p.Description = desc
	return b
}

func (b *ProductBuilder) Category(name string) *ProductBuilder {
	b.p.Category = name
	return b
}

func (b *ProductBuilder) AddImage(uri string, isDefault bool) *ProductBuilder {
	b.p.Images = append(b.p.Images, ProductImage{ImageURI: uri, IsDefault: isDefault})
	return b
}

func (b *ProductBuilder) Images(images []ProductImage) *ProductBuilder {
	b.p.Images = append([]ProductImage(nil), images...)
	return b
}

func (b *ProductBuilder) AddAttribute(name, value string) *ProductBuilder {
	b.p.Attributes = append(b.p.Attributes, ProductAttribute{Name: name, Value: value})
	return b
}

func (b *ProductBuilder) Attributes(attrs []ProductAttribute) *ProductBuilder {
	b.p.Attributes = append([]ProductAttribute(nil), attrs...)
	return b
}

// Build validates the product. When images exist but none is flagged default,
// the first one is promoted.
func (b *ProductBuilder) Build() (Product, error) {
	p := b.p
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Category = strings.TrimSpace(p.Category)

	if p.SKU == "" {
		return Product{}, ErrBlankSKU
	}
	if p.Name == "" {
		return Product{}, ErrBlankName
	}

	images := append([]ProductImage(nil), p.Images...)
	defaults := 0
	uris := make(map[string]struct{}, len(images))
	for _, img := range images {
		if _, ok := uris[img.ImageURI]; ok {
			return Product{}, fmt.Errorf("%w: %q", ErrDuplicateImage, img.ImageURI)
		}
		uris[img.ImageURI] = struct{}{}
		if img.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return Product{}, ErrMultipleDefaults
	}
	if defaults == 0 && len(images) > 0 {
		images[0].IsDefault = true
	}
	p.Images = images

	seen := make(map[string]struct{}, len(p.Attributes))
	for _, a := range p.Attributes {
		if _, ok := seen[a.Name]; ok {
			return Product{}, fmt.Errorf("%w: %q", ErrDuplicateAttribute, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	p.Attributes = append([]ProductAttribute(nil), p.Attributes...)

	return p, nil
}

// ItemRecord is the item table row a product is written as.
type ItemRecord struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	SKU         string `db:"sku"`
	Description string `db:"description"`
	CategoryID  *int64 `db:"category_id"`
}

type ImageRecord struct {
	ItemID    int64  `db:"item_id"`
	ImageURI  string `db:"image_uri"`
	IsDefault bool   `db:"is_default"`
	Position  int    `db:"position"`
}

type AttrRecord struct {
	ItemID   int64  `db:"item_id"`
	Name     string `db:"attr_name"`
	Value    string `db:"attr_value"`
	Position int    `db:"position"`
}

// Records returns the rows an insert of p produces. categoryID is resolved by
// the caller from p.Category.
func (p Product) Records(categoryID *int64) (ItemRecord, []ImageRecord, []AttrRecord) {
	item := ItemRecord{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		CategoryID:  categoryID,
	}
	images := make([]ImageRecord, len(p.Images))
	for i, img := range p.Images {
		images[i] = ImageRecord{ItemID: p.ID, ImageURI: img.ImageURI, IsDefault: img.IsDefault, Position: i}
	}
	attrs := make([]AttrRecord, len(p.Attributes))
	for i, a := range p.Attributes {
		attrs[i] = AttrRecord{ItemID: p.ID, Name: a.Name, Value: a.Value, Position: i}
	}
	return item, images, attrs
}
