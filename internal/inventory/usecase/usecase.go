package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validation"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"go.uber.org/zap"
)

const sellLockTTL = 5 * time.Second

type inventoryUseCase struct {
	repo     inventory.Repository
	cache    cache.Cache
	locker   cache.Locker
	hub      *notify.Hub
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, c cache.Cache, locker cache.Locker, hub *notify.Hub, cacheTTL time.Duration, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:     repo,
		cache:    c,
		locker:   locker,
		hub:      hub,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *inventoryUseCase) SetPrice(ctx context.Context, input *dto.SetPriceInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	err := uc.repo.UpsertPrice(ctx, model.ProductSupplierInfo{
		ItemID:     input.ItemID,
		SupplierID: input.SupplierID,
		UnitPrice:  input.UnitPrice,
	})
	if err != nil {
		return err
	}

	uc.changed(ctx, input.ItemID, input.SupplierID)
	return nil
}

func (uc *inventoryUseCase) SetQuantity(ctx context.Context, input *dto.SetQuantityInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	err := uc.repo.UpsertQuantity(ctx, model.ProductSupplierInventory{
		ItemID:            input.ItemID,
		SupplierID:        input.SupplierID,
		AvailableQuantity: input.AvailableQuantity,
	})
	if err != nil {
		return err
	}

	uc.changed(ctx, input.ItemID, input.SupplierID)
	return nil
}

func (uc *inventoryUseCase) RemoveSupplierItem(ctx context.Context, input *dto.SupplierItemInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	if err := uc.repo.Remove(ctx, input.ItemID, input.SupplierID); err != nil {
		return err
	}

	uc.changed(ctx, input.ItemID, input.SupplierID)
	return nil
}

// SellOne takes one unit of the item from whichever supplier holds the most.
// Sales of the same item are serialized through the locker.
func (uc *inventoryUseCase) SellOne(ctx context.Context, itemID int64) (*model.ProductSupplierInventory, error) {
	release, err := uc.locker.Obtain(ctx, fmt.Sprintf("lock:inventory:item:%d", itemID), sellLockTTL)
	if err != nil {
		return nil, err
	}
	defer release()

	stock, err := uc.repo.DecrementTop(ctx, itemID)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("sold one unit",
		zap.Int64("item_id", stock.ItemID),
		zap.Int64("supplier_id", stock.SupplierID),
		zap.Int("remaining", stock.AvailableQuantity),
	)
	uc.changed(ctx, stock.ItemID, stock.SupplierID)
	return stock, nil
}

func (uc *inventoryUseCase) ListSales(ctx context.Context, filters *dto.SalesFilters) ([]model.SalesLite, error) {
	if filters == nil {
		filters = &dto.SalesFilters{}
	}

	cacheKey, err := readmodel.CacheKey(readmodel.ViewSalesList, filters)
	if err == nil {
		var cached []model.SalesLite
		if hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			uc.logger.Warn("sales cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	sales, err := uc.repo.ListSales(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, sales, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache sales list", zap.Error(err))
		}
	}
	return sales, nil
}

func (uc *inventoryUseCase) WatchSales(ctx context.Context, filters *dto.SalesFilters) <-chan readmodel.Load[[]model.SalesLite] {
	loader := readmodel.NewLoader("sales_list", uc.hub,
		[]notify.Resource{notify.Inventory, notify.Products, notify.Suppliers},
		func(ctx context.Context) ([]model.SalesLite, error) {
			return uc.ListSales(ctx, filters)
		},
		uc.logger,
	)
	return loader.Start(ctx)
}

func (uc *inventoryUseCase) changed(ctx context.Context, itemID, supplierID int64) {
	if err := readmodel.Invalidate(ctx, uc.cache, readmodel.ViewSalesList, readmodel.ViewSupplierList); err != nil {
		uc.logger.Warn("failed to invalidate inventory caches", zap.Error(err))
	}
	uc.hub.Publish(notify.Inventory, notify.Item(itemID), notify.Supplier(supplierID))
}
