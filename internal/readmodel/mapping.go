package readmodel

import (
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

func MapCategory(r Row) (model.Category, error) {
	rd := r.reader()
	c := model.Category{
		ID:   rd.Int64(ColCategoryID),
		Name: rd.String(ColCategoryName),
	}
	return c, rd.err
}

// MapItemID reads the surrogate key out of a natural-key lookup row.
func MapItemID(r Row) (int64, error) {
	rd := r.reader()
	id := rd.Int64(ColItemID)
	return id, rd.err
}

func MapSupplierID(r Row) (int64, error) {
	rd := r.reader()
	id := rd.Int64(ColSupplierID)
	return id, rd.err
}

func MapImage(r Row) (model.ProductImage, error) {
	rd := r.reader()
	img := model.ProductImage{
		ImageURI:  rd.String(ColImageURI),
		IsDefault: rd.Bool(ColImageIsDefault),
	}
	return img, rd.err
}

func MapAttribute(r Row) (model.ProductAttribute, error) {
	rd := r.reader()
	a := model.ProductAttribute{
		Name:  rd.String(ColAttrName),
		Value: rd.String(ColAttrValue),
	}
	return a, rd.err
}

func MapContact(r Row) (model.SupplierContact, error) {
	rd := r.reader()
	c := model.SupplierContact{
		Type:      rd.String(ColContactType),
		Value:     rd.String(ColContactValue),
		IsDefault: rd.Bool(ColContactIsDefault),
	}
	return c, rd.err
}

// MapProduct assembles a product from its item_detail row and the rows of its
// item_images and item_attributes views.
func MapProduct(detail Row, images, attrs []Row) (model.Product, error) {
	rd := detail.reader()
	b := model.NewProductBuilder().
		ID(rd.Int64(ColItemID)).
		Name(rd.String(ColItemName)).
		SKU(rd.String(ColItemSKU)).
		Description(rd.String(ColItemDescription)).
		Category(rd.String(ColCategoryName))
	if rd.err != nil {
		return model.Product{}, rd.err
	}

	for _, r := range images {
		img, err := MapImage(r)
		if err != nil {
			return model.Product{}, err
		}
		b.AddImage(img.ImageURI, img.IsDefault)
	}
	for _, r := range attrs {
		a, err := MapAttribute(r)
		if err != nil {
			return model.Product{}, err
		}
		b.AddAttribute(a.Name, a.Value)
	}
	return b.Build()
}

// MapSupplier assembles a supplier from its supplier_detail row plus the rows
// of supplier_contacts and supplier_items.
func MapSupplier(detail Row, contacts, items []Row) (model.Supplier, error) {
	rd := detail.reader()
	id := rd.Int64(ColSupplierID)
	b := model.NewSupplierBuilder().
		ID(id).
		Name(rd.String(ColSupplierName)).
		Code(rd.String(ColSupplierCode))
	if rd.err != nil {
		return model.Supplier{}, rd.err
	}

	for _, r := range contacts {
		c, err := MapContact(r)
		if err != nil {
			return model.Supplier{}, err
		}
		b.AddContact(c.Type, c.Value, c.IsDefault)
	}
	for _, r := range items {
		it, err := MapSupplierItem(r)
		if err != nil {
			return model.Supplier{}, err
		}
		b.AddPrice(it.ItemID, it.UnitPrice)
	}
	return b.Build()
}

func MapProductLite(r Row) (model.ProductLite, error) {
	rd := r.reader()
	p := model.ProductLite{
		ID:           rd.Int64(ColItemID),
		Name:         rd.String(ColItemName),
		SKU:          rd.String(ColItemSKU),
		Category:     rd.String(ColCategoryName),
		DefaultImage: rd.NullString(ColImageURI),
	}
	return p, rd.err
}

func MapSupplierLite(r Row) (model.SupplierLite, error) {
	rd := r.reader()
	s := model.SupplierLite{
		ID:           rd.Int64(ColSupplierID),
		Name:         rd.String(ColSupplierName),
		Code:         rd.String(ColSupplierCode),
		DefaultPhone: rd.NullString(ColDefaultPhone),
		DefaultEmail: rd.NullString(ColDefaultEmail),
		ItemCount:    rd.Int(ColItemCount),
	}
	return s, rd.err
}

func MapSalesLite(r Row) (model.SalesLite, error) {
	rd := r.reader()
	s := model.SalesLite{
		ItemID:            rd.Int64(ColItemID),
		SupplierID:        rd.Int64(ColSupplierID),
		ItemName:          rd.String(ColItemName),
		ItemSKU:           rd.String(ColItemSKU),
		Category:          rd.String(ColCategoryName),
		DefaultImage:      rd.NullString(ColImageURI),
		SupplierName:      rd.String(ColSupplierName),
		SupplierCode:      rd.String(ColSupplierCode),
		UnitPrice:         rd.Float64(ColUnitPrice),
		AvailableQuantity: rd.Int(ColAvailable),
		TotalAvailable:    rd.Int(ColTotalAvailable),
	}
	return s, rd.err
}

func MapItemSupplier(r Row) (model.ItemSupplierLite, error) {
	rd := r.reader()
	s := model.ItemSupplierLite{
		ItemID:            rd.Int64(ColItemID),
		SupplierID:        rd.Int64(ColSupplierID),
		SupplierName:      rd.String(ColSupplierName),
		SupplierCode:      rd.String(ColSupplierCode),
		UnitPrice:         rd.Float64(ColUnitPrice),
		AvailableQuantity: rd.Int(ColAvailable),
	}
	return s, rd.err
}

func MapSupplierItem(r Row) (model.SupplierItemLite, error) {
	rd := r.reader()
	s := model.SupplierItemLite{
		SupplierID:        rd.Int64(ColSupplierID),
		ItemID:            rd.Int64(ColItemID),
		ItemName:          rd.String(ColItemName),
		ItemSKU:           rd.String(ColItemSKU),
		UnitPrice:         rd.Float64(ColUnitPrice),
		AvailableQuantity: rd.Int(ColAvailable),
	}
	return s, rd.err
}

// MapStock reads an item_top_supplier row.
func MapStock(r Row) (model.ProductSupplierInventory, error) {
	rd := r.reader()
	s := model.ProductSupplierInventory{
		ItemID:            rd.Int64(ColItemID),
		SupplierID:        rd.Int64(ColSupplierID),
		AvailableQuantity: rd.Int(ColAvailable),
	}
	return s, rd.err
}
