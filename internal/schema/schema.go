// Package schema names every table and column of the stock database.
//
// Query code never spells a table or column literally; it goes through these
// constants and Qualify so that joins stay unambiguous.
package schema

// Tables.
const (
	TableCategory          = "category"
	TableItem              = "item"
	TableItemImage         = "item_image"
	TableItemAttr          = "item_attr"
	TableSupplier          = "supplier"
	TableContactType       = "contact_type"
	TableSupplierContact   = "supplier_contact"
	TableItemSupplier      = "item_supplier"
	TableItemSupplierStock = "item_supplier_inventory"
)

// Shared surrogate key column.
const ColID = "id"

// category
const (
	ColCategoryName = "name"
)

// item
const (
	ColItemName        = "name"
	ColItemSKU         = "sku"
	ColItemDescription = "description"
	ColItemCategoryID  = "category_id"
)

// item_image
const (
	ColImageItemID    = "item_id"
	ColImageURI       = "image_uri"
	ColImageIsDefault = "is_default"
	ColImagePosition  = "position"
)

// item_attr
const (
	ColAttrItemID   = "item_id"
	ColAttrName     = "attr_name"
	ColAttrValue    = "attr_value"
	ColAttrPosition = "position"
)

// supplier
const (
	ColSupplierName = "name"
	ColSupplierCode = "code"
)

// contact_type
const (
	ColContactTypeName = "name"
)

// supplier_contact
const (
	ColContactSupplierID = "supplier_id"
	ColContactTypeID     = "contact_type_id"
	ColContactValue      = "value"
	ColContactIsDefault  = "is_default"
	ColContactPosition   = "position"
)

// item_supplier (price facet)
const (
	ColPriceItemID     = "item_id"
	ColPriceSupplierID = "supplier_id"
	ColPriceUnitPrice  = "unit_price"
)

// item_supplier_inventory (stock facet)
const (
	ColStockItemID     = "item_id"
	ColStockSupplierID = "supplier_id"
	ColStockAvailable  = "available_quantity"
)

// Contact type names stored in contact_type.
const (
	ContactTypePhone = "Phone"
	ContactTypeEmail = "Email"
)

// Qualify returns "table.column". The table may also be a query alias.
func Qualify(table, column string) string {
	return table + "." + column
}

// Columns lists the columns of each table in declaration order.
var Columns = map[string][]string{
	TableCategory:          {ColID, ColCategoryName},
	TableItem:              {ColID, ColItemName, ColItemSKU, ColItemDescription, ColItemCategoryID},
	TableItemImage:         {ColImageItemID, ColImageURI, ColImageIsDefault, ColImagePosition},
	TableItemAttr:          {ColAttrItemID, ColAttrName, ColAttrValue, ColAttrPosition},
	TableSupplier:          {ColID, ColSupplierName, ColSupplierCode},
	TableContactType:       {ColID, ColContactTypeName},
	TableSupplierContact:   {ColID, ColContactSupplierID, ColContactTypeID, ColContactValue, ColContactIsDefault, ColContactPosition},
	TableItemSupplier:      {ColPriceItemID, ColPriceSupplierID, ColPriceUnitPrice},
	TableItemSupplierStock: {ColStockItemID, ColStockSupplierID, ColStockAvailable},
}
