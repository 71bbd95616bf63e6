package handler

import (
	"context"

	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/rpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "omnipos.stock.v1.InventoryService"

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(s grpc.ServiceRegistrar) {
	desc := rpc.Service(ServiceName,
		rpc.Unary(ServiceName, "SetPrice", h.SetPrice),
		rpc.Unary(ServiceName, "SetQuantity", h.SetQuantity),
		rpc.Unary(ServiceName, "RemoveSupplierItem", h.RemoveSupplierItem),
		rpc.Unary(ServiceName, "SellOne", h.SellOne),
		rpc.Unary(ServiceName, "ListSales", h.ListSales),
	)
	desc.Streams = append(desc.Streams, rpc.ServerStream("WatchSales", h.WatchSales))
	s.RegisterService(desc, h)
}

func (h *InventoryHandler) SetPrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.SetPriceInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	if err := h.uc.SetPrice(ctx, &input); err != nil {
		h.logger.Error("failed to set price", zap.Int64("item_id", input.ItemID), zap.Int64("supplier_id", input.SupplierID), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(input)
}

func (h *InventoryHandler) SetQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.SetQuantityInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	if err := h.uc.SetQuantity(ctx, &input); err != nil {
		h.logger.Error("failed to set quantity", zap.Int64("item_id", input.ItemID), zap.Int64("supplier_id", input.SupplierID), zap.Error(err))
		return nil, rpc.Status(err)
	}
	return rpc.Encode(input)
}

func (h *InventoryHandler) RemoveSupplierItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.SupplierItemInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	if err := h.uc.RemoveSupplierItem(ctx, &input); err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(input)
}

func (h *InventoryHandler) SellOne(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input dto.SellInput
	if err := rpc.Decode(req, &input); err != nil {
		return nil, err
	}

	stock, err := h.uc.SellOne(ctx, input.ItemID)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.Encode(stock)
}

func (h *InventoryHandler) ListSales(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var filters dto.SalesFilters
	if err := rpc.Decode(req, &filters); err != nil {
		return nil, err
	}

	sales, err := h.uc.ListSales(ctx, &filters)
	if err != nil {
		return nil, rpc.Status(err)
	}
	return rpc.EncodeList(sales)
}

// WatchSales streams the sales list, once immediately and again after every
// stock, product or supplier change. A failed reload is reported as an error
// status and ends the stream.
func (h *InventoryHandler) WatchSales(ctx context.Context, req *structpb.Struct, send rpc.Sender) error {
	var filters dto.SalesFilters
	if err := rpc.Decode(req, &filters); err != nil {
		return err
	}

	for load := range h.uc.WatchSales(ctx, &filters) {
		if load.Err != nil {
			return rpc.Status(load.Err)
		}
		out, err := rpc.EncodeList(load.Value)
		if err != nil {
			return err
		}
		if err := send(out); err != nil {
			return err
		}
	}
	return ctx.Err()
}
