package rabbitmq_adapter

import (
	"time"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// ListingEventDTO - структура, которая соответствует JSON-схеме
// события listing.upserted (schemas/events/listing-upserted/v1.json).
type ListingEventDTO struct {
	SourceListingID string   `json:"sourceListingId"`
	Title           string   `json:"title"`
	Area            string   `json:"area"`
	Type            string   `json:"type"`
	Price           float64  `json:"price"`
	SizeSqm         *float64 `json:"sizeSqm,omitempty"`
	Status          string   `json:"status"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	Bedrooms         *int    `json:"bedrooms,omitempty"`
	View             *string `json:"view,omitempty"`
	Furnished        *bool   `json:"furnished,omitempty"`
	CompletionStatus *string `json:"completionStatus,omitempty"`

	ListedAt time.Time `json:"listedAt"`
}

// toDomainListing транслирует DTO события в доменную сущность.
// ID генерируется здесь; при upsert по source_listing_id он
// используется только для новых записей.
func toDomainListing(dto ListingEventDTO) domain.Listing {
	now := time.Now().UTC()

	return domain.Listing{
		ID:              uuid.New(),
		SourceListingID: dto.SourceListingID,
		Title:           dto.Title,
		Area:            dto.Area,
		Type:            domain.PropertyType(dto.Type),
		Price:           dto.Price,
		SizeSqm:         dto.SizeSqm,
		Status:          domain.ListingStatus(dto.Status),

		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,

		Bedrooms:         dto.Bedrooms,
		View:             dto.View,
		Furnished:        dto.Furnished,
		CompletionStatus: dto.CompletionStatus,

		CreatedAt: dto.ListedAt,
		UpdatedAt: now,
	}
}
