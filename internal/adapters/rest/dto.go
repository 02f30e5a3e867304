package rest

import (
	"time"

	"recommendation-service/internal/core/domain"

	"github.com/google/uuid"
)

// --- Запросы ---

type BuildBundleRequest struct {
	InvestorID string `json:"investor_id"`
	Source     string `json:"source"`
}

type CreateRecommendationRequest struct {
	InvestorID string `json:"investor_id"`
	Source     string `json:"source"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// --- Ответы ---

type ScoredListingResponse struct {
	ListingID uuid.UUID `json:"listing_id"`
	Score     int       `json:"score"`
}

type CounterfactualResponse struct {
	ListingID    uuid.UUID `json:"listing_id"`
	ReasonLabels []string  `json:"reason_labels"`
}

type BundleResponse struct {
	Recommended     []ScoredListingResponse  `json:"recommended"`
	Counterfactuals []CounterfactualResponse `json:"counterfactuals"`
	Source          string                   `json:"source"`
}

type FitReasonResponse struct {
	Label string `json:"label"`
	Met   bool   `json:"met"`
}

type FitScoreResponse struct {
	Score   int                 `json:"score"`
	Reasons []FitReasonResponse `json:"reasons"`
}

type RecommendationResponse struct {
	ID              uuid.UUID                `json:"id"`
	InvestorID      uuid.UUID                `json:"investor_id"`
	CreatedBy       uuid.UUID                `json:"created_by"`
	Source          string                   `json:"source"`
	Status          string                   `json:"status"`
	Recommended     []ScoredListingResponse  `json:"recommended"`
	Counterfactuals []CounterfactualResponse `json:"counterfactuals"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

type PaginatedRecommendationsResponse struct {
	Data    []RecommendationResponse `json:"data"`
	Total   int64                    `json:"total"`
	Page    int                      `json:"page"`
	PerPage int                      `json:"per_page"`
}

// --- Маппинг из домена в DTO ---

func toScoredListingResponses(items []domain.ScoredListing) []ScoredListingResponse {
	out := make([]ScoredListingResponse, len(items))
	for i, item := range items {
		out[i] = ScoredListingResponse{ListingID: item.ListingID, Score: item.Score}
	}
	return out
}

func toCounterfactualResponses(items []domain.Counterfactual) []CounterfactualResponse {
	out := make([]CounterfactualResponse, len(items))
	for i, item := range items {
		out[i] = CounterfactualResponse{ListingID: item.ListingID, ReasonLabels: item.ReasonLabels}
	}
	return out
}

func toBundleResponse(bundle domain.RecommendationBundle) BundleResponse {
	return BundleResponse{
		Recommended:     toScoredListingResponses(bundle.Recommended),
		Counterfactuals: toCounterfactualResponses(bundle.Counterfactuals),
		Source:          string(bundle.Source),
	}
}

func toFitScoreResponse(fit domain.FitResult) FitScoreResponse {
	reasons := make([]FitReasonResponse, len(fit.Reasons))
	for i, reason := range fit.Reasons {
		reasons[i] = FitReasonResponse{Label: reason.Label, Met: reason.Met}
	}
	return FitScoreResponse{Score: fit.Score, Reasons: reasons}
}

func toRecommendationResponse(rec domain.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:              rec.ID,
		InvestorID:      rec.InvestorID,
		CreatedBy:       rec.CreatedBy,
		Source:          string(rec.Source),
		Status:          string(rec.Status),
		Recommended:     toScoredListingResponses(rec.Recommended),
		Counterfactuals: toCounterfactualResponses(rec.Counterfactuals),
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}
}
