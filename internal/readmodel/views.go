package readmodel

import (
	"strings"

	"github.com/fekuna/omnipos-stock-service/internal/schema"
	"github.com/fekuna/omnipos-stock-service/internal/selection"
)

const (
	ViewCategoryList     View = "category_list"
	ViewCategoryByName   View = "category_by_name"
	ViewItemDetail       View = "item_detail"
	ViewItemList         View = "item_list"
	ViewItemBySKU        View = "item_by_sku"
	ViewItemAttributes   View = "item_attributes"
	ViewItemImages       View = "item_images"
	ViewItemSuppliers    View = "item_suppliers"
	ViewItemTopSupplier  View = "item_top_supplier"
	ViewSupplierDetail   View = "supplier_detail"
	ViewSupplierList     View = "supplier_list"
	ViewSupplierByCode   View = "supplier_by_code"
	ViewSupplierContacts View = "supplier_contacts"
	ViewSupplierItems    View = "supplier_items"
	ViewSalesList        View = "sales_list"
)

// Projected column names. Mappers read rows through these.
const (
	ColCategoryID       = "category_id"
	ColCategoryName     = "category_name"
	ColItemID           = "item_id"
	ColItemName         = "item_name"
	ColItemSKU          = "item_sku"
	ColItemDescription  = "item_description"
	ColImageURI         = "image_uri"
	ColImageIsDefault   = "image_is_default"
	ColAttrName         = "attr_name"
	ColAttrValue        = "attr_value"
	ColSupplierID       = "supplier_id"
	ColSupplierName     = "supplier_name"
	ColSupplierCode     = "supplier_code"
	ColDefaultPhone     = "default_phone"
	ColDefaultEmail     = "default_email"
	ColItemCount        = "item_count"
	ColContactType      = "contact_type"
	ColContactValue     = "contact_value"
	ColContactIsDefault = "contact_is_default"
	ColUnitPrice        = "unit_price"
	ColAvailable        = "available_quantity"
	ColTotalAvailable   = "total_available"
)

// Aliases for the inventory table inside correlated subqueries.
const (
	aliasTopStock = "top_stock"
	aliasAllStock = "all_stock"
)

var q = schema.Qualify

func join(parts ...string) string {
	return strings.Join(parts, " ")
}

// defaultImageOnly keeps rows whose joined image is the default one, or rows
// with no image at all.
var defaultImageOnly = selection.New(
	q(schema.TableItemImage, schema.ColImageIsDefault)+" IS NULL OR "+
		q(schema.TableItemImage, schema.ColImageIsDefault)+" = ?", true)

var (
	fromItemWithImage = join(
		schema.TableItem,
		"LEFT JOIN", schema.TableItemImage, "ON", q(schema.TableItem, schema.ColID), "=", q(schema.TableItemImage, schema.ColImageItemID),
		"LEFT JOIN", schema.TableCategory, "ON", q(schema.TableItem, schema.ColItemCategoryID), "=", q(schema.TableCategory, schema.ColID),
	)

	// price rows joined to their stock facet, missing stock reads as zero
	fromPriceWithStock = join(
		schema.TableItemSupplier,
		"LEFT JOIN", schema.TableItemSupplierStock, "ON",
		q(schema.TableItemSupplierStock, schema.ColStockItemID), "=", q(schema.TableItemSupplier, schema.ColPriceItemID),
		"AND", q(schema.TableItemSupplierStock, schema.ColStockSupplierID), "=", q(schema.TableItemSupplier, schema.ColPriceSupplierID),
	)

	availableOrZero = "COALESCE(" + q(schema.TableItemSupplierStock, schema.ColStockAvailable) + ", 0)"
)

var CategoryList = &Definition{
	View: ViewCategoryList,
	Columns: []Column{
		{Name: ColCategoryID, Expr: q(schema.TableCategory, schema.ColID)},
		{Name: ColCategoryName, Expr: q(schema.TableCategory, schema.ColCategoryName)},
	},
	From:    schema.TableCategory,
	OrderBy: q(schema.TableCategory, schema.ColCategoryName),
}

var CategoryByName = &Definition{
	View: ViewCategoryByName,
	Columns: []Column{
		{Name: ColCategoryID, Expr: q(schema.TableCategory, schema.ColID)},
		{Name: ColCategoryName, Expr: q(schema.TableCategory, schema.ColCategoryName)},
	},
	From: schema.TableCategory,
	Key:  naturalKey(q(schema.TableCategory, schema.ColCategoryName)),
}

var ItemDetail = &Definition{
	View: ViewItemDetail,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItem, schema.ColID)},
		{Name: ColItemName, Expr: q(schema.TableItem, schema.ColItemName)},
		{Name: ColItemSKU, Expr: q(schema.TableItem, schema.ColItemSKU)},
		{Name: ColItemDescription, Expr: q(schema.TableItem, schema.ColItemDescription)},
		{Name: ColCategoryName, Expr: q(schema.TableCategory, schema.ColCategoryName)},
	},
	From: join(
		schema.TableItem,
		"LEFT JOIN", schema.TableCategory, "ON", q(schema.TableItem, schema.ColItemCategoryID), "=", q(schema.TableCategory, schema.ColID),
	),
	Key: idKey(q(schema.TableItem, schema.ColID)),
}

// ItemList yields exactly one row per product: the LEFT JOIN keeps products
// without images and the default filter drops every non-default image row.
var ItemList = &Definition{
	View: ViewItemList,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItem, schema.ColID)},
		{Name: ColItemName, Expr: q(schema.TableItem, schema.ColItemName)},
		{Name: ColItemSKU, Expr: q(schema.TableItem, schema.ColItemSKU)},
		{Name: ColCategoryName, Expr: q(schema.TableCategory, schema.ColCategoryName)},
		{Name: ColImageURI, Expr: q(schema.TableItemImage, schema.ColImageURI)},
	},
	From:    fromItemWithImage,
	Where:   defaultImageOnly,
	OrderBy: q(schema.TableItem, schema.ColItemName) + ", " + q(schema.TableItem, schema.ColID),
}

var ItemBySKU = &Definition{
	View: ViewItemBySKU,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItem, schema.ColID)},
	},
	From: schema.TableItem,
	Key:  naturalKey(q(schema.TableItem, schema.ColItemSKU)),
}

var ItemAttributes = &Definition{
	View: ViewItemAttributes,
	Columns: []Column{
		{Name: ColAttrName, Expr: q(schema.TableItemAttr, schema.ColAttrName)},
		{Name: ColAttrValue, Expr: q(schema.TableItemAttr, schema.ColAttrValue)},
	},
	From:    schema.TableItemAttr,
	Key:     idKey(q(schema.TableItemAttr, schema.ColAttrItemID)),
	OrderBy: q(schema.TableItemAttr, schema.ColAttrPosition),
}

var ItemImages = &Definition{
	View: ViewItemImages,
	Columns: []Column{
		{Name: ColImageURI, Expr: q(schema.TableItemImage, schema.ColImageURI)},
		{Name: ColImageIsDefault, Expr: q(schema.TableItemImage, schema.ColImageIsDefault)},
	},
	From:    schema.TableItemImage,
	Key:     idKey(q(schema.TableItemImage, schema.ColImageItemID)),
	OrderBy: q(schema.TableItemImage, schema.ColImagePosition),
}

var ItemSuppliers = &Definition{
	View: ViewItemSuppliers,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItemSupplier, schema.ColPriceItemID)},
		{Name: ColSupplierID, Expr: q(schema.TableSupplier, schema.ColID)},
		{Name: ColSupplierName, Expr: q(schema.TableSupplier, schema.ColSupplierName)},
		{Name: ColSupplierCode, Expr: q(schema.TableSupplier, schema.ColSupplierCode)},
		{Name: ColUnitPrice, Expr: q(schema.TableItemSupplier, schema.ColPriceUnitPrice)},
		{Name: ColAvailable, Expr: availableOrZero},
	},
	From: join(
		fromPriceWithStock,
		"JOIN", schema.TableSupplier, "ON", q(schema.TableSupplier, schema.ColID), "=", q(schema.TableItemSupplier, schema.ColPriceSupplierID),
	),
	Key:     idKey(q(schema.TableItemSupplier, schema.ColPriceItemID)),
	OrderBy: q(schema.TableSupplier, schema.ColSupplierName),
}

// ItemTopSupplier is the stock row a sale is taken from. Ties fall to the
// engine's row order.
var ItemTopSupplier = &Definition{
	View: ViewItemTopSupplier,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItemSupplierStock, schema.ColStockItemID)},
		{Name: ColSupplierID, Expr: q(schema.TableItemSupplierStock, schema.ColStockSupplierID)},
		{Name: ColAvailable, Expr: q(schema.TableItemSupplierStock, schema.ColStockAvailable)},
	},
	From:    schema.TableItemSupplierStock,
	Key:     idKey(q(schema.TableItemSupplierStock, schema.ColStockItemID)),
	OrderBy: q(schema.TableItemSupplierStock, schema.ColStockAvailable) + " DESC",
	Limit:   1,
}

var SupplierDetail = &Definition{
	View: ViewSupplierDetail,
	Columns: []Column{
		{Name: ColSupplierID, Expr: q(schema.TableSupplier, schema.ColID)},
		{Name: ColSupplierName, Expr: q(schema.TableSupplier, schema.ColSupplierName)},
		{Name: ColSupplierCode, Expr: q(schema.TableSupplier, schema.ColSupplierCode)},
	},
	From: schema.TableSupplier,
	Key:  idKey(q(schema.TableSupplier, schema.ColID)),
}

// defaultContactOf is a scalar subquery for the supplier's default contact of
// one type. It yields NULL when there is none.
func defaultContactOf(name, contactType string) Column {
	expr := "(" + join(
		"SELECT", q(schema.TableSupplierContact, schema.ColContactValue),
		"FROM", schema.TableSupplierContact,
		"JOIN", schema.TableContactType, "ON", q(schema.TableContactType, schema.ColID), "=", q(schema.TableSupplierContact, schema.ColContactTypeID),
		"WHERE", q(schema.TableContactType, schema.ColContactTypeName), "= ?",
		"AND", q(schema.TableSupplierContact, schema.ColContactIsDefault), "= ?",
		"AND", q(schema.TableSupplierContact, schema.ColContactSupplierID), "=", q(schema.TableSupplier, schema.ColID),
		"LIMIT 1",
	) + ")"
	return Column{Name: name, Expr: expr, Args: []interface{}{contactType, true}}
}

var SupplierList = &Definition{
	View: ViewSupplierList,
	Columns: []Column{
		{Name: ColSupplierID, Expr: q(schema.TableSupplier, schema.ColID)},
		{Name: ColSupplierName, Expr: q(schema.TableSupplier, schema.ColSupplierName)},
		{Name: ColSupplierCode, Expr: q(schema.TableSupplier, schema.ColSupplierCode)},
		defaultContactOf(ColDefaultPhone, schema.ContactTypePhone),
		defaultContactOf(ColDefaultEmail, schema.ContactTypeEmail),
		{Name: ColItemCount, Expr: "(" + join(
			"SELECT COUNT(DISTINCT", q(schema.TableItemSupplier, schema.ColPriceItemID)+")",
			"FROM", schema.TableItemSupplier,
			"WHERE", q(schema.TableItemSupplier, schema.ColPriceSupplierID), "=", q(schema.TableSupplier, schema.ColID),
		) + ")"},
	},
	From:    schema.TableSupplier,
	OrderBy: q(schema.TableSupplier, schema.ColSupplierName) + ", " + q(schema.TableSupplier, schema.ColID),
}

var SupplierByCode = &Definition{
	View: ViewSupplierByCode,
	Columns: []Column{
		{Name: ColSupplierID, Expr: q(schema.TableSupplier, schema.ColID)},
	},
	From: schema.TableSupplier,
	Key:  naturalKey(q(schema.TableSupplier, schema.ColSupplierCode)),
}

var SupplierContacts = &Definition{
	View: ViewSupplierContacts,
	Columns: []Column{
		{Name: ColContactType, Expr: q(schema.TableContactType, schema.ColContactTypeName)},
		{Name: ColContactValue, Expr: q(schema.TableSupplierContact, schema.ColContactValue)},
		{Name: ColContactIsDefault, Expr: q(schema.TableSupplierContact, schema.ColContactIsDefault)},
	},
	From: join(
		schema.TableSupplierContact,
		"JOIN", schema.TableContactType, "ON", q(schema.TableContactType, schema.ColID), "=", q(schema.TableSupplierContact, schema.ColContactTypeID),
	),
	Key:     idKey(q(schema.TableSupplierContact, schema.ColContactSupplierID)),
	OrderBy: q(schema.TableSupplierContact, schema.ColContactPosition) + ", " + q(schema.TableSupplierContact, schema.ColID),
}

var SupplierItems = &Definition{
	View: ViewSupplierItems,
	Columns: []Column{
		{Name: ColSupplierID, Expr: q(schema.TableItemSupplier, schema.ColPriceSupplierID)},
		{Name: ColItemID, Expr: q(schema.TableItem, schema.ColID)},
		{Name: ColItemName, Expr: q(schema.TableItem, schema.ColItemName)},
		{Name: ColItemSKU, Expr: q(schema.TableItem, schema.ColItemSKU)},
		{Name: ColUnitPrice, Expr: q(schema.TableItemSupplier, schema.ColPriceUnitPrice)},
		{Name: ColAvailable, Expr: availableOrZero},
	},
	From: join(
		fromPriceWithStock,
		"JOIN", schema.TableItem, "ON", q(schema.TableItem, schema.ColID), "=", q(schema.TableItemSupplier, schema.ColPriceItemID),
	),
	Key:     idKey(q(schema.TableItemSupplier, schema.ColPriceSupplierID)),
	OrderBy: q(schema.TableItem, schema.ColItemName),
}

// topSupplierOfItem resolves the supplier holding the most stock of the outer
// item. No secondary sort key: ties go to whichever row the engine yields first.
var topSupplierOfItem = "(" + join(
	"SELECT", q(aliasTopStock, schema.ColStockSupplierID),
	"FROM", schema.TableItemSupplierStock, "AS", aliasTopStock,
	"WHERE", q(aliasTopStock, schema.ColStockItemID), "=", q(schema.TableItem, schema.ColID),
	"ORDER BY", q(aliasTopStock, schema.ColStockAvailable), "DESC",
	"LIMIT 1",
) + ")"

// SalesList pairs every stocked product with its top supplier and the total
// quantity held across all suppliers. Requiring the price row's supplier to
// equal the stock row's supplier keeps one supplier's price from being paired
// with another's stock.
var SalesList = &Definition{
	View: ViewSalesList,
	Columns: []Column{
		{Name: ColItemID, Expr: q(schema.TableItem, schema.ColID)},
		{Name: ColSupplierID, Expr: q(schema.TableItemSupplierStock, schema.ColStockSupplierID)},
		{Name: ColItemName, Expr: q(schema.TableItem, schema.ColItemName)},
		{Name: ColItemSKU, Expr: q(schema.TableItem, schema.ColItemSKU)},
		{Name: ColCategoryName, Expr: q(schema.TableCategory, schema.ColCategoryName)},
		{Name: ColImageURI, Expr: q(schema.TableItemImage, schema.ColImageURI)},
		{Name: ColSupplierName, Expr: q(schema.TableSupplier, schema.ColSupplierName)},
		{Name: ColSupplierCode, Expr: q(schema.TableSupplier, schema.ColSupplierCode)},
		{Name: ColUnitPrice, Expr: q(schema.TableItemSupplier, schema.ColPriceUnitPrice)},
		{Name: ColAvailable, Expr: q(schema.TableItemSupplierStock, schema.ColStockAvailable)},
		{Name: ColTotalAvailable, Expr: "(" + join(
			"SELECT SUM("+q(aliasAllStock, schema.ColStockAvailable)+")",
			"FROM", schema.TableItemSupplierStock, "AS", aliasAllStock,
			"WHERE", q(aliasAllStock, schema.ColStockItemID), "=", q(schema.TableItem, schema.ColID),
		) + ")"},
	},
	From: join(
		fromItemWithImage,
		"JOIN", schema.TableItemSupplierStock, "ON", q(schema.TableItemSupplierStock, schema.ColStockItemID), "=", q(schema.TableItem, schema.ColID),
		"JOIN", schema.TableItemSupplier, "ON", q(schema.TableItemSupplier, schema.ColPriceItemID), "=", q(schema.TableItem, schema.ColID),
		"JOIN", schema.TableSupplier, "ON", q(schema.TableSupplier, schema.ColID), "=", q(schema.TableItemSupplierStock, schema.ColStockSupplierID),
	),
	Where: selection.All(
		defaultImageOnly,
		selection.New(q(schema.TableItemSupplierStock, schema.ColStockSupplierID)+" = "+topSupplierOfItem),
		selection.New(q(schema.TableItemSupplier, schema.ColPriceSupplierID)+" = "+q(schema.TableItemSupplierStock, schema.ColStockSupplierID)),
	),
	OrderBy: q(schema.TableItem, schema.ColItemName) + ", " + q(schema.TableItem, schema.ColID),
}

// Definitions indexes every view by name.
var Definitions = map[View]*Definition{
	ViewCategoryList:     CategoryList,
	ViewCategoryByName:   CategoryByName,
	ViewItemDetail:       ItemDetail,
	ViewItemList:         ItemList,
	ViewItemBySKU:        ItemBySKU,
	ViewItemAttributes:   ItemAttributes,
	ViewItemImages:       ItemImages,
	ViewItemSuppliers:    ItemSuppliers,
	ViewItemTopSupplier:  ItemTopSupplier,
	ViewSupplierDetail:   SupplierDetail,
	ViewSupplierList:     SupplierList,
	ViewSupplierByCode:   SupplierByCode,
	ViewSupplierContacts: SupplierContacts,
	ViewSupplierItems:    SupplierItems,
	ViewSalesList:        SalesList,
}
