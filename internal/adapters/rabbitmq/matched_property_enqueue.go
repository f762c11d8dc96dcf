package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"catastro-service/internal/constants"
	"catastro-service/internal/contextkeys"
	"catastro-service/internal/contracts"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// Publisher - часть rabbitmq_producer.Publisher, которая нужна адаптеру
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// MatchedPropertySinkAdapter публикует совпавшие объекты как MatchedPropertyEvent
type MatchedPropertySinkAdapter struct {
	producer   Publisher
	routingKey string
	now        func() time.Time
}

func NewMatchedPropertySinkAdapter(producer Publisher, routingKey string) (*MatchedPropertySinkAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &MatchedPropertySinkAdapter{
		producer:   producer,
		routingKey: routingKey,
		now:        time.Now,
	}, nil
}

// Accept реализует port.ResultSinkPort. Publisher сам сериализует доступ к каналу.
func (a *MatchedPropertySinkAdapter) Accept(ctx context.Context, ref domain.CadastralReference, record domain.PropertyRecord) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "MatchedPropertySinkAdapter",
		"routing_key": a.routingKey,
	})

	matchedAt := a.now()
	eventDTO := toMatchedPropertyEventDTO(contextkeys.RunIDFromContext(ctx), ref, record, matchedAt)

	body, err := json.Marshal(eventDTO)
	if err != nil {
		adapterLogger.Error("Failed to marshal matched property to JSON", err, nil)
		return fmt.Errorf("failed to marshal matched property %s: %w", ref.Value, err)
	}

	if err := contracts.ValidateEvent(constants.MatchedPropertyEventKey, body); err != nil {
		adapterLogger.Error("Matched property event violates its contract", err, nil)
		return fmt.Errorf("matched property %s: %w", ref.Value, err)
	}

	eventType, eventVersion, _ := strings.Cut(constants.MatchedPropertyEventKey, "/")
	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    matchedAt,
		Headers: amqp.Table{
			"event-type":    eventType,
			"event-version": eventVersion,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish matched property", err, nil)
		return err
	}

	adapterLogger.Debug("Published matched property", nil)
	return nil
}
