package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/category"
	"github.com/fekuna/omnipos-stock-service/internal/category/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/notify"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/validation"
	"github.com/fekuna/omnipos-stock-service/internal/readmodel"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo     category.Repository
	cache    cache.Cache
	hub      *notify.Hub
	cacheTTL time.Duration
	logger   logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, c cache.Cache, hub *notify.Hub, cacheTTL time.Duration, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:     repo,
		cache:    c,
		hub:      hub,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	cat, err := uc.repo.Create(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	uc.changed(ctx)
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	key, err := readmodel.CacheKey(readmodel.ViewCategoryList, nil)
	if err == nil {
		var cached []model.Category
		if hit, err := uc.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	cats, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := uc.cache.SetJSON(ctx, key, cats, uc.cacheTTL); err != nil {
			uc.logger.Warn("failed to cache categories", zap.Error(err))
		}
	}
	return cats, nil
}

// PreloadCategories seeds the default category set into an empty table.
func (uc *categoryUseCase) PreloadCategories(ctx context.Context) (int, error) {
	n, err := uc.repo.Seed(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.logger.Info("preloaded categories", zap.Int("count", n))
		uc.changed(ctx)
	}
	return n, nil
}

func (uc *categoryUseCase) changed(ctx context.Context) {
	if err := readmodel.Invalidate(ctx, uc.cache, readmodel.ViewCategoryList); err != nil {
		uc.logger.Warn("failed to invalidate category cache", zap.Error(err))
	}
	uc.hub.Publish(notify.Categories)
}
