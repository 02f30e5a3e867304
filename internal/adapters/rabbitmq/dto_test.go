package rabbitmq_adapter

import (
	"encoding/json"
	"testing"
	"time"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainListing_FullEvent(t *testing.T) {
	raw := `{
		"sourceListingId": "bayut-42",
		"title": "Furnished 1BR",
		"area": "Dubai Marina",
		"type": "residential",
		"price": 980000,
		"sizeSqm": 68.2,
		"status": "available",
		"latitude": 25.08,
		"longitude": 55.14,
		"bedrooms": 1,
		"view": "marina",
		"furnished": true,
		"completionStatus": "ready",
		"listedAt": "2026-07-15T09:30:00Z"
	}`

	var dto ListingEventDTO
	require.NoError(t, json.Unmarshal([]byte(raw), &dto))

	listing := toDomainListing(dto)

	assert.NotEqual(t, uuid.Nil, listing.ID)
	assert.Equal(t, "bayut-42", listing.SourceListingID)
	assert.Equal(t, "Dubai Marina", listing.Area)
	assert.Equal(t, domain.PropertyTypeResidential, listing.Type)
	assert.Equal(t, 980000.0, listing.Price)
	require.NotNil(t, listing.SizeSqm)
	assert.Equal(t, 68.2, *listing.SizeSqm)
	assert.Equal(t, domain.ListingStatusAvailable, listing.Status)
	require.NotNil(t, listing.Bedrooms)
	assert.Equal(t, 1, *listing.Bedrooms)
	require.NotNil(t, listing.Furnished)
	assert.True(t, *listing.Furnished)
	assert.Equal(t, time.Date(2026, 7, 15, 9, 30, 0, 0, time.UTC), listing.CreatedAt)
}

func TestToDomainListing_OptionalFieldsStayNil(t *testing.T) {
	dto := ListingEventDTO{
		SourceListingID: "bayut-43",
		Title:           "Plot",
		Area:            "Al Barsha",
		Type:            "land",
		Price:           3000000,
		Status:          "available",
		ListedAt:        time.Now().UTC(),
	}

	listing := toDomainListing(dto)

	assert.Nil(t, listing.SizeSqm)
	assert.Nil(t, listing.Latitude)
	assert.Nil(t, listing.Longitude)
	assert.Nil(t, listing.Bedrooms)
	assert.Nil(t, listing.View)
	assert.Nil(t, listing.Furnished)
	assert.Nil(t, listing.CompletionStatus)
}
