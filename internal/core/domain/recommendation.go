package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BundleSource - откуда инициирована сборка подборки.
type BundleSource string

const (
	BundleSourceManual    BundleSource = "manual"
	BundleSourceAIInsight BundleSource = "ai_insight"
	BundleSourceNLPQuery  BundleSource = "nlp_query"
)

// ParseBundleSource валидирует строковый тег источника.
func ParseBundleSource(s string) (BundleSource, error) {
	switch BundleSource(s) {
	case BundleSourceManual, BundleSourceAIInsight, BundleSourceNLPQuery:
		return BundleSource(s), nil
	}
	return "", fmt.Errorf("unknown bundle source '%s': %w", s, ErrInvalidBundleSource)
}

// FitReason - результат проверки одного критерия мандата.
type FitReason struct {
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

// FitResult - итог скоринга объекта по мандату.
// Не персистится: пересчитывается на каждый запрос.
type FitResult struct {
	Score   int         `json:"score"`
	Reasons []FitReason `json:"reasons"`
}

// ScoredListing - объект, попавший в рекомендованную часть подборки.
type ScoredListing struct {
	ListingID uuid.UUID `json:"listing_id"`
	Score     int       `json:"score"`
}

// Counterfactual - объект, рассмотренный, но исключенный из рекомендаций,
// с метками критериев, по которым он не прошел.
type Counterfactual struct {
	ListingID    uuid.UUID `json:"listing_id"`
	ReasonLabels []string  `json:"reason_labels"`
}

// RecommendationBundle - эфемерный результат сборки подборки.
// Используется один раз для создания черновика Recommendation.
type RecommendationBundle struct {
	Recommended     []ScoredListing  `json:"recommended"`
	Counterfactuals []Counterfactual `json:"counterfactuals"`
	Source          BundleSource     `json:"source"`
}

// EmptyBundle возвращает пустую подборку с непустыми срезами,
// чтобы вызывающая сторона могла отрисовать empty state без nil-проверок.
func EmptyBundle(source BundleSource) RecommendationBundle {
	return RecommendationBundle{
		Recommended:     []ScoredListing{},
		Counterfactuals: []Counterfactual{},
		Source:          source,
	}
}

// RecommendationStatus - жизненный цикл сохраненной рекомендации.
type RecommendationStatus string

const (
	RecommendationStatusDraft    RecommendationStatus = "draft"
	RecommendationStatusSent     RecommendationStatus = "sent"
	RecommendationStatusViewed   RecommendationStatus = "viewed"
	RecommendationStatusArchived RecommendationStatus = "archived"
)

// ParseRecommendationStatus валидирует строковый статус.
func ParseRecommendationStatus(s string) (RecommendationStatus, error) {
	switch RecommendationStatus(s) {
	case RecommendationStatusDraft, RecommendationStatusSent,
		RecommendationStatusViewed, RecommendationStatusArchived:
		return RecommendationStatus(s), nil
	}
	return "", fmt.Errorf("unknown recommendation status '%s': %w", s, ErrInvalidStatus)
}

// CanTransitionTo проверяет допустимость перехода статуса.
// draft -> sent -> viewed, архивировать можно из любого статуса.
func (s RecommendationStatus) CanTransitionTo(next RecommendationStatus) bool {
	if next == RecommendationStatusArchived {
		return s != RecommendationStatusArchived
	}
	switch s {
	case RecommendationStatusDraft:
		return next == RecommendationStatusSent
	case RecommendationStatusSent:
		return next == RecommendationStatusViewed
	}
	return false
}

// Recommendation - сохраненная рекомендация, созданная из подборки.
type Recommendation struct {
	ID              uuid.UUID
	InvestorID      uuid.UUID
	CreatedBy       uuid.UUID // пользователь CRM, инициировавший создание
	Source          BundleSource
	Status          RecommendationStatus
	Recommended     []ScoredListing
	Counterfactuals []Counterfactual

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PaginatedRecommendations - страница рекомендаций инвестора.
type PaginatedRecommendations struct {
	Items        []Recommendation
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}
