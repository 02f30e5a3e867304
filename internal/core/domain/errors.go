package domain

import "errors"

// Сентинельные ошибки домена. Адаптеры оборачивают их через %w,
// обработчики проверяют через errors.Is.
var (
	ErrInvestorNotFound       = errors.New("investor not found")
	ErrListingNotFound        = errors.New("listing not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrInvalidBundleSource    = errors.New("invalid bundle source")
	ErrInvalidStatus          = errors.New("invalid recommendation status")
	ErrStatusTransition       = errors.New("status transition not allowed")
)
