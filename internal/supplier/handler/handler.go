package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc"
	"github.com/fekuna/omnipos-stock-service/internal/supplier"
	"github.com/fekuna/omnipos-stock-service/internal/supplier/dto"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "omnipos.stock.v1.SupplierService"

type SupplierHandler struct {
	uc     supplier.UseCase
	logger logger.ZapLogger
}

func NewSupplierHandler(uc supplier.UseCase, log logger.ZapLogger) *SupplierHandler {
	return &SupplierHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SupplierHandler) Register(s grpc.ServiceRegistrar) {
	s.RegisterService(rpc.Service(ServiceName,
		rpc.Unary(ServiceName, "CreateSupplier", h.CreateSupplier),
		rpc.Unary(ServiceName, "GetSupplier", h.GetSupplier),
		rpc.Unary(ServiceName, "ListSuppliers", h.ListSuppliers),
		rpc.Unary(ServiceName, "UpdateSupplier", h.UpdateSupplier),
		rpc.Unary(ServiceName, "DeleteSupplier", h.DeleteSupplier),
		rpc.Unary(ServiceName, "ResolveCode", h.ResolveCode),
	), h)
}

func (h *SupplierHandler) CreateSupplier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.CreateSupplierInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	s, err := h.uc.CreateSupplier(ctx, &input)
	if err != nil {
		h.logger.Error("failed to create supplier", zap.String("code", input.Code), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(s)
}

func (h *SupplierHandler) GetSupplier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.SupplierID
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	s, err := h.uc.GetSupplier(ctx, in.ID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(s)
}

func (h *SupplierHandler) ListSuppliers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.uc.ListSuppliers(ctx)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.EncodeList(list)
}

func (h *SupplierHandler) UpdateSupplier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.UpdateSupplierInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	s, err := h.uc.UpdateSupplier(ctx, &input)
	if err != nil {
		h.logger.Error("failed to update supplier", zap.Int64("id", input.ID), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(s)
}

func (h *SupplierHandler) DeleteSupplier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.SupplierID
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	if err := h.uc.DeleteSupplier(ctx, in.ID); err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(in)
}

func (h *SupplierHandler) ResolveCode(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in dto.CodeLookup
	if err := rpc.Decode(req, &in); err != nil {
		return nil, err
	}

	id, err := h.uc.ResolveCode(ctx, in.Code)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(dto.SupplierID{ID: id})
}
