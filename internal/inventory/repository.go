package inventory

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	UpsertPrice(ctx context.Context, info model.ProductSupplierInfo) error
	UpsertQuantity(ctx context.Context, inv model.ProductSupplierInventory) error
	Remove(ctx context.Context, itemID, supplierID int64) error

	// DecrementTop takes one unit from the supplier holding the most stock of
	// the item and returns that supplier's row after the decrement.
	DecrementTop(ctx context.Context, itemID int64) (*model.ProductSupplierInventory, error)

	ListSales(ctx context.Context, filters *dto.SalesFilters) ([]model.SalesLite, error)
}
