package domain

import (
	"time"

	"github.com/google/uuid"
)

// ListingStatus - статус объекта в каталоге.
type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusReserved  ListingStatus = "reserved"
	ListingStatusSold      ListingStatus = "sold"
	ListingStatusWithdrawn ListingStatus = "withdrawn"
)

// PropertyType - тип недвижимости.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeMixedUse    PropertyType = "mixed_use"
	PropertyTypeLand        PropertyType = "land"
)

// Listing - объект каталога недвижимости.
// Каталог принадлежит внешнему сервису, мы храним его реплику,
// обновляемую событиями listing.upserted. Опциональные атрибуты - указатели.
type Listing struct {
	ID              uuid.UUID
	SourceListingID string // ID объявления в сервисе-владельце каталога
	Title           string
	Area            string // район/локация, например "Downtown Dubai"
	Type            PropertyType
	Price           float64
	SizeSqm         *float64
	Status          ListingStatus

	Latitude  *float64
	Longitude *float64

	Bedrooms         *int
	View             *string
	Furnished        *bool
	CompletionStatus *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
