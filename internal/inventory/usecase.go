package inventory

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
)

type UseCase interface {
	SetPrice(ctx context.Context, input *dto.SetPriceInput) error
	SetQuantity(ctx context.Context, input *dto.SetQuantityInput) error
	RemoveSupplierItem(ctx context.Context, input *dto.SupplierItemInput) error
	SellOne(ctx context.Context, itemID int64) (*model.ProductSupplierInventory, error)
	ListSales(ctx context.Context, filters *dto.SalesFilters) ([]model.SalesLite, error)

	// WatchSales delivers the sales list now and again after every change
	// that can affect it, until ctx is done.
	WatchSales(ctx context.Context, filters *dto.SalesFilters) <-chan readmodel.Load[[]model.SalesLite]
}
