package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc"
	"github.com/fekuna/omnipos-stock-service/internal/product"
	"github.com/fekuna/omnipos-stock-service/internal/product/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "omnipos.stock.v1.ProductService"

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(rpc.Service(ServiceName,
		rpc.Unary(ServiceName, "CreateProduct", h.CreateProduct),
		rpc.Unary(ServiceName, "GetProduct", h.GetProduct),
		rpc.Unary(ServiceName, "ListProducts", h.ListProducts),
		rpc.Unary(ServiceName, "UpdateProduct", h.UpdateProduct),
		rpc.Unary(ServiceName, "DeleteProduct", h.DeleteProduct),
		rpc.Unary(ServiceName, "ResolveSKU", h.ResolveSKU),
	), h)
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.CreateProductInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	p, err := h.uc.CreateProduct(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create product", zap.String("sku", input.SKU), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.ProductID
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	p, err := h.uc.GetProduct(ctx, in.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var filters dto.ProductFilters
	if err := rpc.Decode(req, &filters); err != nil {
		return nil, err
	}

	products, err := h.uc.ListProducts(ctx, &filters)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.EncodeList(products)
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.UpdateProductInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProduct(ctx, &input)
	if err != nil {
		h.logger.Error("failed to update product", zap.Int64("id", input.ID), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(p)
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.ProductID
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	if err := h.uc.DeleteProduct(ctx, in.ID); err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(in)
}

func (h *ProductHandler) ResolveSKU(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.SKULookup
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	id, err := h.uc.ResolveSKU(ctx, in.SKU)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(dto.ProductID{ID: id})
}
