package model

// ProductLite feeds the product list screen.
type ProductLite struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	DefaultImage *string `json:"default_image"`
}

// SupplierLite feeds the supplier list screen.
type SupplierLite struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	DefaultPhone *string `json:"default_phone"`
	DefaultEmail *string `json:"default_email"`
	ItemCount    int     `json:"item_count"`
}

// SalesLite is one product on the sales screen, paired with the supplier that
// currently holds the most stock of it.
type SalesLite struct {
	ItemID            int64   `json:"item_id"`
	SupplierID        int64   `json:"supplier_id"`
	ItemName          string  `json:"item_name"`
	ItemSKU           string  `json:"item_sku"`
	Category          string  `json:"category"`
	DefaultImage      *string `json:"default_image"`
	SupplierName      string  `json:"supplier_name"`
	SupplierCode      string  `json:"supplier_code"`
	UnitPrice         float64 `json:"unit_price"`
	AvailableQuantity int     `json:"available_quantity"`
	TotalAvailable    int     `json:"total_available"`
}

// ItemSupplierLite is one supplier of a product with its price and stock.
type ItemSupplierLite struct {
	ItemID            int64   `json:"item_id"`
	SupplierID        int64   `json:"supplier_id"`
	SupplierName      string  `json:"supplier_name"`
	SupplierCode      string  `json:"supplier_code"`
	UnitPrice         float64 `json:"unit_price"`
	AvailableQuantity int     `json:"available_quantity"`
}

// SupplierItemLite is one product a supplier sells.
type SupplierItemLite struct {
	SupplierID        int64   `json:"supplier_id"`
	ItemID            int64   `json:"item_id"`
	ItemName          string  `json:"item_name"`
	ItemSKU           string  `json:"item_sku"`
	UnitPrice         float64 `json:"unit_price"`
	AvailableQuantity int     `json:"available_quantity"`
}
