package dto

import "github.com/fekuna/omnipos-stock-service/internal/model"

type ContactInput struct {
	Type      string `json:"type" validate:"required,oneof=Phone Email"`
	Value     string `json:"value" validate:"required,max=255"`
	IsDefault bool   `json:"is_default"`
}

type CreateSupplierInput struct {
	Code     string         `json:"code" validate:"required,max=32"`
	Name     string         `json:"name" validate:"required,max=255"`
	Contacts []ContactInput `json:"contacts" validate:"dive"`
}

// UpdateSupplierInput replaces the supplier's name, code and contacts. Prices
// and stock are managed through the inventory service.
type UpdateSupplierInput struct {
	ID int64 `json:"id" validate:"required,gt=0"`
	CreateSupplierInput
}

type SupplierID struct {
	ID int64 `json:"id"`
}

type CodeLookup struct {
	Code string `json:"code"`
}

// SupplierDetail is a supplier with every item it prices.
type SupplierDetail struct {
	model.Supplier
	Items []model.SupplierItemLite `json:"items"`
}
