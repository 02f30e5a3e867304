package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validListingEvent = `{
	"sourceListingId": "bayut-12345",
	"title": "2BR apartment with Burj view",
	"area": "Downtown Dubai",
	"type": "residential",
	"price": 1500000,
	"sizeSqm": 104.5,
	"status": "available",
	"listedAt": "2026-08-01T10:00:00Z"
}`

func TestValidateEvent_ValidPayload(t *testing.T) {
	err := ValidateEvent("ListingUpsertedEvent", "1.0.0", []byte(validListingEvent))
	assert.NoError(t, err)
}

func TestValidateEvent_MissingRequiredField(t *testing.T) {
	payload := `{"title": "no source id", "area": "Downtown", "type": "residential", "price": 1, "status": "available", "listedAt": "2026-08-01T10:00:00Z"}`

	err := ValidateEvent("ListingUpsertedEvent", "1.0.0", []byte(payload))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON schema validation failed")
}

func TestValidateEvent_InvalidEnumValue(t *testing.T) {
	payload := `{"sourceListingId": "x", "title": "t", "area": "a", "type": "castle", "price": 1, "status": "available", "listedAt": "2026-08-01T10:00:00Z"}`

	err := ValidateEvent("ListingUpsertedEvent", "1.0.0", []byte(payload))

	assert.Error(t, err)
}

func TestValidateEvent_NonPositivePrice(t *testing.T) {
	payload := `{"sourceListingId": "x", "title": "t", "area": "a", "type": "land", "price": 0, "status": "available", "listedAt": "2026-08-01T10:00:00Z"}`

	err := ValidateEvent("ListingUpsertedEvent", "1.0.0", []byte(payload))

	assert.Error(t, err)
}

func TestValidateEvent_UnknownEventType(t *testing.T) {
	err := ValidateEvent("UnknownEvent", "1.0.0", []byte(`{}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateEvent_UnknownVersion(t *testing.T) {
	err := ValidateEvent("ListingUpsertedEvent", "9.0.0", []byte(validListingEvent))

	assert.Error(t, err)
}

func TestValidateEvent_MalformedJSON(t *testing.T) {
	err := ValidateEvent("ListingUpsertedEvent", "1.0.0", []byte(`{not json`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid JSON")
}

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "ListingUpsertedEvent/1.0.0", generateKeyFromPath("events/listing-upserted/v1.json"))
	assert.Equal(t, "RecommendationCreatedEvent/2.0.0", generateKeyFromPath("events/recommendation-created/v2.json"))
}
