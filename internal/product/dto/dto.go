package dto

import "github.com/fekuna/omnipos-stock-service/internal/model"

type ImageInput struct {
	URI       string `json:"uri" validate:"required,max=2048"`
	IsDefault bool   `json:"is_default"`
}

type AttributeInput struct {
	Name  string `json:"name" validate:"required,max=64"`
	Value string `json:"value" validate:"max=255"`
}

type CreateProductInput struct {
	SKU         string           `json:"sku" validate:"required,max=64"`
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	Category    string           `json:"category" validate:"max=64"`
	Images      []ImageInput     `json:"images" validate:"dive"`
	Attributes  []AttributeInput `json:"attributes" validate:"dive"`
}

// UpdateProductInput replaces every field of the product, including its
// images and attributes.
type UpdateProductInput struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	CreateProductInput
}

type ProductFilters struct {
	Category string   `json:"category"`
	SKUs     []string `json:"skus"`
	Search   string   `json:"search"`
}

type ProductID struct {
	ID int64 `json:"id"`
}

type SKULookup struct {
	SKU string `json:"sku"`
}

// ProductDetail is a product with the suppliers that price or stock it.
type ProductDetail struct {
	model.Product
	Suppliers []model.ItemSupplierLite `json:"suppliers"`
}
