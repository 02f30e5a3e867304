package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recommendation-service/internal/constants"
	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// recommendationCreatedEvent - полезная нагрузка события recommendation.created.
type recommendationCreatedEvent struct {
	RecommendationID string    `json:"recommendationId"`
	InvestorID       string    `json:"investorId"`
	Source           string    `json:"source"`
	RecommendedCount int       `json:"recommendedCount"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RabbitMQRecommendationEventsAdapter реализует RecommendationEventsPort для RabbitMQ.
type RabbitMQRecommendationEventsAdapter struct {
	producer *rabbitmq_producer.Publisher
}

// NewRabbitMQRecommendationEventsAdapter создает новый экземпляр адаптера.
// producer - это уже инициализированный экземпляр rabbitmq_producer.Publisher,
// привязанный к обменнику recommendation.events.
func NewRabbitMQRecommendationEventsAdapter(producer *rabbitmq_producer.Publisher) (*RabbitMQRecommendationEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}

	return &RabbitMQRecommendationEventsAdapter{
		producer: producer,
	}, nil
}

func (a *RabbitMQRecommendationEventsAdapter) PublishRecommendationCreated(ctx context.Context, rec domain.Recommendation) error {

	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":         "RabbitMQRecommendationEventsAdapter",
		"routing_key":       constants.RoutingKeyRecommendationCreated,
		"recommendation_id": rec.ID.String(),
	})

	event := recommendationCreatedEvent{
		RecommendationID: rec.ID.String(),
		InvestorID:       rec.InvestorID.String(),
		Source:           string(rec.Source),
		RecommendedCount: len(rec.Recommended),
		CreatedAt:        rec.CreatedAt,
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal event to JSON", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal recommendation.created event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         eventJSON,
		DeliveryMode: amqp.Persistent, // Для сохранения сообщений при перезапуске брокера
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    constants.EventTypeRecommendationCreated,
			"event-version": constants.EventVersionV1,
		},
	}

	traceID := contextkeys.TraceIDFromContext(ctx)
	if traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// Таймаут на операцию публикации, если контекст его не предоставляет
	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Info("Publishing recommendation.created event", nil)
	err = a.producer.Publish(publishCtx, constants.RoutingKeyRecommendationCreated, msg)
	if err != nil {
		adapterLogger.Error("Failed to publish recommendation.created event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish recommendation.created for %s: %w", rec.ID, err)
	}

	adapterLogger.Info("Successfully published recommendation.created event", nil)
	return nil
}
