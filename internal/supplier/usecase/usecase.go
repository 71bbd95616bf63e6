package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/apperr"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validation"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"github.com/fekuna/omnipos-stock-service/internal/supplier"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
	"go.uber.org/zap"
)

type supplierUseCase struct {
	repo        supplier.Repository
	cache       cache.Cache
	hub         *notify.Hub
	cacheTTL    time.Duration
	phoneRegion string
	logger      logger.ZapLogger
}

// NewSupplierUseCase builds the supplier usecase. Phone contacts written
// without a country code are parsed in phoneRegion.
func NewSupplierUseCase(repo supplier.Repository, c cache.Cache, hub *notify.Hub, cacheTTL time.Duration, phoneRegion string, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{
		repo:        repo,
		cache:       c,
		hub:         hub,
		cacheTTL:    cacheTTL,
		phoneRegion: phoneRegion,
		logger:      log,
	}
}

func (uc *supplierUseCase) CreateSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error) {
	s, err := uc.build(0, input)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindIDByCode(ctx, s.Code)
	if err != nil {
		return nil, err
	}
	if existing != 0 {
		return nil, fmt.Errorf("%w: %q", supplier.ErrCodeExists, s.Code)
	}

	id, err := uc.repo.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	s.ID = id

	uc.changed(ctx, id)
	return &s, nil
}

func (uc *supplierUseCase) GetSupplier(ctx context.Context, id int64) (*dto.SupplierDetail, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, supplier.ErrSupplierNotFound
	}
	return s, nil
}

func (uc *supplierUseCase) ListSuppliers(ctx context.Context) ([]model.SupplierLite, error) {
	cacheKey, err := readmodel.CacheKey(readmodel.ViewSupplierList, nil)
	if err == nil {
		var cached []model.SupplierLite
		if hit, err := uc.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if err := uc.cache.SetJSON(ctx, cacheKey, list, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache supplier list", zap.Error(err))
		}
	}
	return list, nil
}

func (uc *supplierUseCase) UpdateSupplier(ctx context.Context, input *dto.UpdateSupplierInput) (*model.Supplier, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	s, err := uc.build(input.ID, &input.CreateSupplierInput)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindIDByCode(ctx, s.Code)
	if err != nil {
		return nil, err
	}
	if existing != 0 && existing != s.ID {
		return nil, fmt.Errorf("%w: %q", supplier.ErrCodeExists, s.Code)
	}

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	uc.changed(ctx, s.ID)
	return &s, nil
}

func (uc *supplierUseCase) DeleteSupplier(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", apperr.ErrInvalid)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.changed(ctx, id)
	uc.hub.Publish(notify.Inventory, notify.Products)
	return nil
}

func (uc *supplierUseCase) ResolveCode(ctx context.Context, code string) (int64, error) {
	id, err := uc.repo.FindIDByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: %q", supplier.ErrSupplierNotFound, code)
	}
	return id, nil
}

// build validates input, normalizes contact values and returns the supplier.
func (uc *supplierUseCase) build(id int64, input *dto.CreateSupplierInput) (model.Supplier, error) {
	if err := validation.Struct(input); err != nil {
		return model.Supplier{}, err
	}

	b := model.NewSupplierBuilder().ID(id).Name(input.Name).Code(input.Code)
	for _, c := range input.Contacts {
		value, err := uc.normalizeContact(c.Type, c.Value)
		if err != nil {
			return model.Supplier{}, err
		}
		b.AddContact(c.Type, value, c.IsDefault)
	}

	s, err := b.Build()
	if err != nil {
		return model.Supplier{}, fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}
	return s, nil
}

func (uc *supplierUseCase) normalizeContact(contactType, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch contactType {
	case model.ContactPhone:
		return validation.NormalizePhone(value, uc.phoneRegion)
	case model.ContactEmail:
		value = strings.ToLower(value)
		if err := validation.Var(value, "email"); err != nil {
			return "", err
		}
	}
	return value, nil
}

func (uc *supplierUseCase) changed(ctx context.Context, id int64) {
	if err := readmodel.Invalidate(ctx, uc.cache, readmodel.ViewSupplierList, readmodel.ViewSalesList); err != nil {
		uc.logger.Warn("failed to invalidate supplier caches", zap.Error(err))
	}
	uc.hub.Publish(notify.Suppliers, notify.Supplier(id))
}
