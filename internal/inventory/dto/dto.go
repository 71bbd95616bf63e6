package dto

type SetPriceInput struct {
	ItemID     int64   `json:"item_id" validate:"required,gt=0"`
	SupplierID int64   `json:"supplier_id" validate:"required,gt=0"`
	UnitPrice  float64 `json:"unit_price" validate:"gte=0"`
}

type SetQuantityInput struct {
	ItemID            int64 `json:"item_id" validate:"required,gt=0"`
	SupplierID        int64 `json:"supplier_id" validate:"required,gt=0"`
	AvailableQuantity int   `json:"available_quantity" validate:"gte=0"`
}

type SupplierItemInput struct {
	ItemID     int64 `json:"item_id" validate:"required,gt=0"`
	SupplierID int64 `json:"supplier_id" validate:"required,gt=0"`
}

type SellInput struct {
	ItemID int64 `json:"item_id"`
}

type SalesFilters struct {
	Category string   `json:"category"`
	SKUs     []string `json:"skus"`
}
