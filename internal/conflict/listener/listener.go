package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-commission-service/internal/conflict"
	"github.com/fekuna/omnipos-commission-service/internal/model"
	"github.com/fekuna/omnipos-commission-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// ConflictListener drops cached team conflict sets whenever a sale changes.
// Events carry no ordering guarantee, so nothing is patched incrementally:
// the next read re-derives every alert from the store.
type ConflictListener struct {
	consumer MessageReader
	cache    conflict.Cache
	logger   logger.ZapLogger
}

func NewConflictListener(consumer MessageReader, cache conflict.Cache, logger logger.ZapLogger) *ConflictListener {
	return &ConflictListener{
		consumer: consumer,
		cache:    cache,
		logger:   logger,
	}
}

func (l *ConflictListener) Start(ctx context.Context) {
	l.logger.Info("Starting Conflict Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Conflict Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *ConflictListener) processMessage(ctx context.Context, value []byte) {
	var evt model.SaleEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if evt.EventType != model.EventSaleChanged && evt.EventType != model.EventSaleDeleted {
		return
	}

	l.logger.Debug("Invalidating team conflicts",
		zap.String("event_type", evt.EventType),
		zap.String("stock_number", evt.Payload.StockNumber),
	)

	if err := l.cache.DeletePattern(ctx, conflict.TeamCachePattern); err != nil {
		l.logger.Error("Failed to invalidate team conflicts", zap.Error(err))
	}
}
