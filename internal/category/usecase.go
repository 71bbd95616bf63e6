package category

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/category/dto"
	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	PreloadCategories(ctx context.Context) (int, error)
}
