package category

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
)

type Repository interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByName(ctx context.Context, name string) (*model.Category, error)
	Create(ctx context.Context, name string) (*model.Category, error)
	Seed(ctx context.Context) (int, error)
}
