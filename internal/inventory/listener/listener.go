package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/fekuna/omnipos-stock-service/internal/inventory"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"go.uber.org/zap"
)

const EventSaleRecorded = "SaleRecorded"

// ItemResolver maps a SKU to its item id.
type ItemResolver interface {
	ResolveSKU(ctx context.Context, sku string) (int64, error)
}

type SaleListener struct {
	reader   broker.Reader
	uc       inventory.UseCase
	items    ItemResolver
	logger   logger.ZapLogger
	retryGap time.Duration
}

func NewSaleListener(reader broker.Reader, uc inventory.UseCase, items ItemResolver, logger logger.ZapLogger) *SaleListener {
	return &SaleListener{
		reader:   reader,
		uc:       uc,
		items:    items,
		logger:   logger,
		retryGap: time.Second,
	}
}

// Start consumes until ctx is done.
func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting sale listener")
	for {
		msg, err := l.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping sale listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(l.retryGap):
			}
			continue
		}
		l.processMessage(ctx, msg.Value)
	}
}

type SaleRecordedEvent struct {
	EventID   string      `json:"event_id"`
	EventType string      `json:"event_type"`
	Payload   SalePayload `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

type SalePayload struct {
	SaleID string            `json:"sale_id"`
	Items  []SaleItemPayload `json:"items"`
}

// SaleItemPayload names the item by id or, when ItemID is zero, by SKU.
type SaleItemPayload struct {
	ItemID   int64  `json:"item_id,omitempty"`
	SKU      string `json:"sku,omitempty"`
	Quantity int    `json:"quantity"`
}

func (l *SaleListener) processMessage(ctx context.Context, value []byte) {
	var event SaleRecordedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != EventSaleRecorded {
		return
	}

	log := l.logger.With(zap.String("event_id", event.EventID), zap.String("sale_id", event.Payload.SaleID))
	log.Info("Processing SaleRecorded event", zap.Int("lines", len(event.Payload.Items)))

	for _, item := range event.Payload.Items {
		itemID := item.ItemID
		if itemID == 0 {
			id, err := l.items.ResolveSKU(ctx, item.SKU)
			if err != nil {
				log.Error("Failed to resolve sale item", zap.String("sku", item.SKU), zap.Error(err))
				continue
			}
			itemID = id
		}

		for i := 0; i < item.Quantity; i++ {
			if _, err := l.uc.SellOne(ctx, itemID); err != nil {
				if errors.Is(err, inventory.ErrOutOfStock) {
					log.Warn("Sale exceeds stock", zap.Int64("item_id", itemID), zap.Int("sold", i), zap.Int("requested", item.Quantity))
				} else {
					log.Error("Failed to record sale", zap.Int64("item_id", itemID), zap.Error(err))
				}
				break
			}
		}
	}
}
