package supplier

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
)

type Repository interface {
	Create(ctx context.Context, s model.Supplier) (int64, error)
	FindByID(ctx context.Context, id int64) (*dto.SupplierDetail, error)
	FindAll(ctx context.Context) ([]model.SupplierLite, error)
	Update(ctx context.Context, s model.Supplier) error
	Delete(ctx context.Context, id int64) error

	// FindIDByCode returns 0 when no supplier has the code.
	FindIDByCode(ctx context.Context, code string) (int64, error)
}
