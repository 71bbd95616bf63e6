package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validation"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo     product.Repository
	cache    cache.Cache
	hub      *notify.Hub
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, c cache.Cache, hub *notify.Hub, cacheTTL time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		cache:    c,
		hub:      hub,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	p, err := build(0, input)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindIDBySKU(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	if existing != 0 {
		return nil, fmt.Errorf("%w: %q", product.ErrSKUExists, p.SKU)
	}

	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	uc.changed(ctx, id)
	return &p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*dto.ProductDetail, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}

	suppliers, err := uc.repo.FindSuppliers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetail{Product: *p, Suppliers: suppliers}, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductLite, error) {
	if filters == nil {
		filters = &dto.ProductFilters{}
	}

	cacheKey, err := readmodel.CacheKey(readmodel.ViewItemList, filters)
	if err == nil {
		var cached []model.ProductLite
		if hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
			uc.logger.Warn("product cache read failed", zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	products, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, products, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}
	return products, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	p, err := build(input.ID, &input.CreateProductInput)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindIDBySKU(ctx, p.SKU)
	if err != nil {
		return nil, err
	}
	if existing != 0 && existing != p.ID {
		return nil, fmt.Errorf("%w: %q", product.ErrSKUExists, p.SKU)
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	uc.changed(ctx, p.ID)
	return &p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", apperr.ErrInvalid)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.changed(ctx, id)
	uc.hub.Publish(notify.Inventory, notify.Suppliers)
	return nil
}

func (uc *productUseCase) ResolveSKU(ctx context.Context, sku string) (int64, error) {
	id, err := uc.repo.FindIDBySKU(ctx, sku)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: %q", product.ErrProductNotFound, sku)
	}
	return id, nil
}

// build validates input and turns it into a product value.
func build(id int64, input *dto.CreateProductInput) (model.Product, error) {
	if err := validation.Struct(input); err != nil {
		return model.Product{}, err
	}

	b := model.NewProductBuilder().
		ID(id).
		Name(input.Name).
		SKU(input.SKU).
		Description(input.Description).
		Category(input.Category)
	for _, img := range input.Images {
		b.AddImage(img.URI, img.IsDefault)
	}
	for _, a := range input.Attributes {
		b.AddAttribute(a.Name, a.Value)
	}

	p, err := b.Build()
	if err != nil {
		return model.Product{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	return p, nil
}

func (uc *productUseCase) changed(ctx context.Context, id int64) {
	if err := readmodel.Invalidate(ctx, uc.cache, readmodel.ViewItemList, readmodel.ViewSalesList, readmodel.ViewCategoryList, readmodel.ViewSupplierList); err != nil {
		uc.logger.Warn("failed to invalidate product caches", zap.Error(err))
	}
	uc.hub.Publish(notify.Products, notify.Item(id), notify.Categories)
}
