// Command sale-emit publishes a SaleRecorded event to the sales topic. It is
// a manual driver for the stock service's sale listener.
//
//	sale-emit -sku COLA -qty 2
//	sale-emit -item 7 -qty 1
package main

import (
	"context"
	"encoding/json"
	"flag"
	"time"

	"github.com/fekuna/omnipos-stock-service/config"
	"github.com/fekuna/omnipos-stock-service/internal/inventory/listener"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/broker"
	"github.com/fekuna/omnipos-stock-service/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	itemID := flag.Int64("item", 0, "item id")
	sku := flag.String("sku", "", "item sku, used when -item is not set")
	qty := flag.Int("qty", 1, "units sold")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment: true,
		Encoding:      "console",
		Level:         "info",
	})
	defer appLogger.Sync()

	if *itemID == 0 && *sku == "" {
		appLogger.Fatal("one of -item or -sku is required")
	}
	if *qty < 1 {
		appLogger.Fatal("-qty must be positive", zap.Int("qty", *qty))
	}

	event := listener.SaleRecordedEvent{
		EventID:   uuid.NewString(),
		EventType: listener.EventSaleRecorded,
		Payload: listener.SalePayload{
			SaleID: uuid.NewString(),
			Items:  []listener.SaleItemPayload{{ItemID: *itemID, SKU: *sku, Quantity: *qty}},
		},
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		appLogger.Fatal("failed to encode event", zap.Error(err))
	}

	producer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	defer producer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := producer.Publish(ctx, []byte(event.Payload.SaleID), value); err != nil {
		appLogger.Fatal("failed to publish sale", zap.Error(err))
	}
	appLogger.Info("Published sale",
		zap.String("event_id", event.EventID),
		zap.String("sale_id", event.Payload.SaleID),
		zap.String("topic", cfg.Kafka.Topic),
	)
}
