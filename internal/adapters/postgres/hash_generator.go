package postgres_adapter

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"recommendation-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

const geohashPrecision = 5

// normalizeSizeToBucket огрубляет площадь до корзины, чтобы мелкие
// расхождения в выгрузках каталога не ломали дедупликацию.
func normalizeSizeToBucket(size *float64, bucketSize float64) string {
	if size == nil {
		return "null"
	}
	if bucketSize <= 0 {
		bucketSize = 1.0 // Защита от деления на ноль
	}
	bucketIndex := int(*size / bucketSize)
	return fmt.Sprintf("%d", bucketIndex)
}

// buildListingHashPayload создает стабильную строку из ключевых полей
// объекта для хэширования. Если есть координаты, локация кодируется
// geohash-префиксом; иначе - нормализованным названием района.
func buildListingHashPayload(l domain.Listing) string {
	var location string
	if l.Latitude != nil && l.Longitude != nil {
		location = geohash.Encode(*l.Latitude, *l.Longitude)[:geohashPrecision]
	} else {
		location = strings.ToLower(strings.TrimSpace(l.Area))
	}

	parts := []string{
		location,
		string(l.Type),
		normalizeSizeToBucket(l.SizeSqm, 2.0),
		fmt.Sprintf("%.0f", l.Price),
	}

	return strings.Join(parts, "|")
}

// calculateListingHash вычисляет SHA256 хэш для объекта.
func calculateListingHash(payload string) string {
	h := sha256.New()
	h.Write([]byte(payload))
	return fmt.Sprintf("%x", h.Sum(nil))
}
