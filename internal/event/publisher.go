package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is satisfied by *broker.KafkaProducer.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

func NewSaleEvent(eventType string, s *model.Sale) model.SaleEvent {
	return model.SaleEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Payload: model.SaleEventPayload{
			SaleID:        s.ID,
			StockNumber:   s.StockNumber,
			SalespersonID: s.SalespersonID,
		},
		Timestamp: time.Now().UTC(),
	}
}

// PublishSale emits a sale event keyed by stock number. Failures are logged
// and swallowed: the write already committed and readers re-derive state.
func PublishSale(ctx context.Context, pub Publisher, log logger.ZapLogger, eventType string, s *model.Sale) {
	if pub == nil || s == nil {
		return
	}
	data, err := json.Marshal(NewSaleEvent(eventType, s))
	if err != nil {
		log.Error("failed to marshal sale event", zap.Error(err))
		return
	}
	if err := pub.Publish(ctx, s.StockNumber, data); err != nil {
		log.Warn("failed to publish sale event",
			zap.String("sale_id", s.ID),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
