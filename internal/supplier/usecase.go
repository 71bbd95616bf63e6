package supplier

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/model"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
)

type UseCase interface {
	CreateSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*dto.SupplierDetail, error)
	ListSuppliers(ctx context.Context) ([]model.SupplierLite, error)
	UpdateSupplier(ctx context.Context, input *dto.UpdateSupplierInput) (*model.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
	ResolveCode(ctx context.Context, code string) (int64, error)
}
