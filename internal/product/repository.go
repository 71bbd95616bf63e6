package product

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, p model.Product) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.ProductLite, error)
	FindSuppliers(ctx context.Context, id int64) ([]model.ItemSupplierLite, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	// FindIDBySKU returns 0 when no product has the SKU.
	FindIDBySKU(ctx context.Context, sku string) (int64, error)
}
