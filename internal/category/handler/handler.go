package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/category"
	"github.com/fekuna/omnipos-stock-service/internal/category/dto"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "omnipos.stock.v1.CategoryService"

type CategoryHandler struct {
	uc     category.UseCase
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CategoryHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(rpc.Service(ServiceName,
		rpc.Unary(ServiceName, "CreateCategory", h.CreateCategory),
		rpc.Unary(ServiceName, "ListCategories", h.ListCategories),
	), h)
}

func (h *CategoryHandler) CreateCategory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.CreateCategoryInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	cat, err := h.uc.CreateCategory(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(cat)
}

func (h *CategoryHandler) ListCategories(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	cats, err := h.uc.ListCategories(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.EncodeList(cats)
}
