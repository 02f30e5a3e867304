package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"recommendation-service/internal/constants"
	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/contracts"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/port/usecases_port"
	"recommendation-service/pkg/rabbitmq/rabbitmq_common"
	"recommendation-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ListingConsumerAdapter - входящий адаптер, который слушает очередь
// событий каталога и вызывает use case для пакетного сохранения объектов.
type ListingConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	useCase  usecases_port.SaveListingsPort
	logger   port.LoggerPort
}

// NewListingConsumerAdapter создает новый адаптер.
func NewListingConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.SaveListingsPort,
	batchSize int,
	batchTimeout time.Duration,
	connManager *rabbitmq_common.ConnectionManager,
	logger port.LoggerPort,
) (*ListingConsumerAdapter, error) {

	adapter := &ListingConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	// Создаем consumer, передавая ему метод этого адаптера как обработчик
	consumer, err := rabbitmq_consumer.NewBatchConsumer(consumerCfg, adapter.batchMessageHandler, batchSize, batchTimeout, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for listing events: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

// batchMessageHandler - обработчик, который принимает срез сообщений.
// Ошибка возвращается только когда пачку имеет смысл повторить:
// невалидные по схеме сообщения пропускаются, иначе они будут
// бесконечно заворачивать всю пачку в ретрай.
func (a *ListingConsumerAdapter) batchMessageHandler(deliveries []amqp.Delivery) error {
	batchID := uuid.New().String()
	batchLogger := a.logger.WithFields(port.Fields{
		"component":  "ListingConsumerAdapter",
		"batch_id":   batchID,
		"batch_size": len(deliveries),
	})
	ctx := contextkeys.ContextWithLogger(context.Background(), batchLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, batchID)

	batchLogger.Info("Received batch of listing events to process.", nil)

	listings := make([]domain.Listing, 0, len(deliveries))
	for _, d := range deliveries {
		listing, err := a.unmarshalListing(d)
		if err != nil {
			batchLogger.Error("Skipping malformed listing event", err, port.Fields{
				"delivery_tag": d.DeliveryTag,
			})
			continue
		}
		listings = append(listings, *listing)
	}

	if len(listings) == 0 {
		batchLogger.Warn("No valid listings in batch to save.", nil)
		return nil
	}

	if err := a.useCase.BatchSave(ctx, listings); err != nil {
		batchLogger.Error("BatchSave failed, batch will be retried", err, nil)
		return err
	}
	return nil
}

// unmarshalListing - разбор одного сообщения: валидация по схеме,
// десериализация в DTO и трансляция в домен.
func (a *ListingConsumerAdapter) unmarshalListing(d amqp.Delivery) (*domain.Listing, error) {
	eventType, _ := d.Headers["event-type"].(string)
	eventVersion, _ := d.Headers["event-version"].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		return nil, fmt.Errorf("message failed schema validation: %w", err)
	}

	var dto ListingEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listing event DTO: %w", err)
	}

	if dto.Type != "" {
		if !isKnownPropertyType(dto.Type) {
			return nil, fmt.Errorf("unknown property type '%s'", dto.Type)
		}
	}

	listing := toDomainListing(dto)
	return &listing, nil
}

func isKnownPropertyType(t string) bool {
	switch domain.PropertyType(t) {
	case domain.PropertyTypeResidential, domain.PropertyTypeCommercial,
		domain.PropertyTypeMixedUse, domain.PropertyTypeLand:
		return true
	}
	return false
}

// DefaultListingConsumerConfig собирает конфигурацию потребителя
// с топологией ретраев для очереди каталога.
func DefaultListingConsumerConfig(url string, prefetch, maxRetries, retryTTLMs int, pkgLogger rabbitmq_common.Logger) rabbitmq_consumer.ConsumerConfig {
	return rabbitmq_consumer.ConsumerConfig{
		Config: rabbitmq_common.Config{URL: url},

		QueueName:    constants.QueueListingUpserted,
		DeclareQueue: true,
		DurableQueue: true,

		ExchangeNameForBind:    constants.ExchangeListingEvents,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    "topic",
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyListingUpserted,

		PrefetchCount: prefetch,
		ConsumerTag:   "recommendation-service-listing-consumer",

		EnableRetryMechanism: true,
		RetryExchange:        constants.ListingRetryExchange,
		RetryQueue:           constants.ListingRetryQueue,
		RetryTTL:             retryTTLMs,
		FinalDLXExchange:     constants.ListingFinalDLX,
		FinalDLQ:             constants.ListingFinalDLQ,
		FinalDLQRoutingKey:   constants.RoutingKeyListingDLQ,
		MaxRetries:           maxRetries,

		Logger: pkgLogger,
	}
}

// Start реализует EventListenerPort, запуская прослушивание очереди
func (a *ListingConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close реализует EventListenerPort, корректно останавливая консьюмера
func (a *ListingConsumerAdapter) Close() error {
	return a.consumer.Close()
}
