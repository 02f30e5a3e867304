package constants

// Обменники
const (
	ExchangeListingEvents        = "listing.events"
	ExchangeRecommendationEvents = "recommendation.events"
)

// Очереди
const (
	QueueListingUpserted = "recommendation-service.listing.upserted"

	// Инфраструктура ретраев для очереди каталога
	ListingRetryExchange = "recommendation-service.listing.retry"
	ListingRetryQueue    = "recommendation-service.listing.retry.wait"
	ListingFinalDLX      = "recommendation-service.listing.dlx"
	ListingFinalDLQ      = "recommendation-service.listing.dlq"
)

// Ключи маршрутизации
const (
	RoutingKeyListingUpserted       = "listing.upserted"
	RoutingKeyListingDLQ            = "listing.upserted.failed"
	RoutingKeyRecommendationCreated = "recommendation.created"
)

// Типы и версии событий (заголовки event-type/event-version)
const (
	EventTypeListingUpserted       = "ListingUpsertedEvent"
	EventTypeRecommendationCreated = "RecommendationCreatedEvent"
	EventVersionV1                 = "1.0.0"
)
