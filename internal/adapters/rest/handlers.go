package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"recommendation-service/internal/contextkeys"
	"recommendation-service/internal/core/domain"
	"recommendation-service/internal/core/port"
	"recommendation-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RecommendationHandler - обработчики REST API сервиса рекомендаций.
type RecommendationHandler struct {
	buildBundleUC  usecases_port.BuildBundlePort
	scoreListingUC usecases_port.ScoreListingPort
	createUC       usecases_port.CreateRecommendationPort
	getListUC      usecases_port.GetRecommendationsListPort
	getByIDUC      usecases_port.GetRecommendationByIDPort
	updateStatusUC usecases_port.UpdateRecommendationStatusPort
}

// NewRecommendationHandler - конструктор.
func NewRecommendationHandler(
	buildBundleUC usecases_port.BuildBundlePort,
	scoreListingUC usecases_port.ScoreListingPort,
	createUC usecases_port.CreateRecommendationPort,
	getListUC usecases_port.GetRecommendationsListPort,
	getByIDUC usecases_port.GetRecommendationByIDPort,
	updateStatusUC usecases_port.UpdateRecommendationStatusPort,
) *RecommendationHandler {
	return &RecommendationHandler{
		buildBundleUC:  buildBundleUC,
		scoreListingUC: scoreListingUC,
		createUC:       createUC,
		getListUC:      getListUC,
		getByIDUC:      getByIDUC,
		updateStatusUC: updateStatusUC,
	}
}

// BuildBundle обрабатывает POST /api/v1/recommendations/bundle
func (h *RecommendationHandler) BuildBundle(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "BuildBundle"})

	var reqDTO BuildBundleRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for build bundle", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	investorID, err := uuid.Parse(reqDTO.InvestorID)
	if err != nil {
		logger.Warn("Invalid investor_id format in request", port.Fields{"provided_id": reqDTO.InvestorID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid investor_id format")
		return
	}

	source, err := domain.ParseBundleSource(reqDTO.Source)
	if err != nil {
		logger.Warn("Invalid source in request", port.Fields{"provided_source": reqDTO.Source})
		WriteJSONError(w, http.StatusBadRequest, "Invalid source")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"investor_id": investorID,
		"source":      source,
	})
	handlerLogger.Info("Processing request to build recommendation bundle", nil)

	bundle, err := h.buildBundleUC.Execute(r.Context(), investorID, source)
	if err != nil {
		handlerLogger.Error("Build bundle use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to build recommendation bundle")
		return
	}

	handlerLogger.Info("Successfully built recommendation bundle", port.Fields{
		"recommended_count":    len(bundle.Recommended),
		"counterfactual_count": len(bundle.Counterfactuals),
	})
	RespondWithJSON(w, http.StatusOK, toBundleResponse(bundle))
}

// GetFitScore обрабатывает GET /api/v1/fit-score?investor_id=...&listing_id=...
func (h *RecommendationHandler) GetFitScore(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFitScore"})

	investorID, err := uuid.Parse(r.URL.Query().Get("investor_id"))
	if err != nil {
		logger.Warn("Invalid investor_id query parameter", port.Fields{"provided_id": r.URL.Query().Get("investor_id")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid investor_id query parameter")
		return
	}
	listingID, err := uuid.Parse(r.URL.Query().Get("listing_id"))
	if err != nil {
		logger.Warn("Invalid listing_id query parameter", port.Fields{"provided_id": r.URL.Query().Get("listing_id")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid listing_id query parameter")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"investor_id": investorID,
		"listing_id":  listingID,
	})
	handlerLogger.Info("Processing request to score listing", nil)

	fit, err := h.scoreListingUC.Execute(r.Context(), investorID, listingID)
	if err != nil {
		if errors.Is(err, domain.ErrInvestorNotFound) || errors.Is(err, domain.ErrListingNotFound) {
			handlerLogger.Warn("Entity not found for fit score", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		handlerLogger.Error("Score listing use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to score listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toFitScoreResponse(fit))
}

// CreateRecommendation обрабатывает POST /api/v1/recommendations
func (h *RecommendationHandler) CreateRecommendation(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateRecommendation"})

	userID, ok := r.Context().Value(userIDKey).(uuid.UUID)
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var reqDTO CreateRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for create recommendation", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	investorID, err := uuid.Parse(reqDTO.InvestorID)
	if err != nil {
		logger.Warn("Invalid investor_id format in request", port.Fields{"provided_id": reqDTO.InvestorID})
		WriteJSONError(w, http.StatusBadRequest, "Invalid investor_id format")
		return
	}

	source, err := domain.ParseBundleSource(reqDTO.Source)
	if err != nil {
		logger.Warn("Invalid source in request", port.Fields{"provided_source": reqDTO.Source})
		WriteJSONError(w, http.StatusBadRequest, "Invalid source")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"investor_id": investorID,
		"created_by":  userID,
		"source":      source,
	})
	handlerLogger.Info("Processing request to create recommendation", nil)

	rec, err := h.createUC.Execute(r.Context(), investorID, userID, source)
	if err != nil {
		handlerLogger.Error("Create recommendation use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to create recommendation")
		return
	}

	handlerLogger.Info("Successfully created recommendation", port.Fields{"recommendation_id": rec.ID})
	RespondWithJSON(w, http.StatusCreated, toRecommendationResponse(*rec))
}

// GetRecommendations обрабатывает GET /api/v1/recommendations?investor_id=...
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetRecommendations"})

	investorID, err := uuid.Parse(r.URL.Query().Get("investor_id"))
	if err != nil {
		logger.Warn("Invalid investor_id query parameter", port.Fields{"provided_id": r.URL.Query().Get("investor_id")})
		WriteJSONError(w, http.StatusBadRequest, "Invalid investor_id query parameter")
		return
	}

	// Парсим параметры пагинации
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 {
		limit = 20 // Значение по умолчанию
	}
	if offset < 0 {
		offset = 0
	}

	handlerLogger := logger.WithFields(port.Fields{
		"investor_id": investorID,
		"limit":       limit,
		"offset":      offset,
	})
	handlerLogger.Info("Processing request to get recommendations", nil)

	paginatedResult, err := h.getListUC.Execute(r.Context(), investorID, limit, offset)
	if err != nil {
		handlerLogger.Error("Get recommendations use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve recommendations")
		return
	}

	response := PaginatedRecommendationsResponse{
		Data:    make([]RecommendationResponse, len(paginatedResult.Items)),
		Total:   paginatedResult.TotalCount,
		Page:    paginatedResult.CurrentPage,
		PerPage: paginatedResult.ItemsPerPage,
	}
	for i, rec := range paginatedResult.Items {
		response.Data[i] = toRecommendationResponse(rec)
	}

	handlerLogger.Info("Successfully retrieved recommendations", port.Fields{
		"total_found":   paginatedResult.TotalCount,
		"items_on_page": len(paginatedResult.Items),
	})
	RespondWithJSON(w, http.StatusOK, response)
}

// GetRecommendationByID обрабатывает GET /api/v1/recommendations/{recommendationID}
func (h *RecommendationHandler) GetRecommendationByID(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetRecommendationByID"})

	idStr := chi.URLParam(r, "recommendationID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid recommendationID in URL", port.Fields{"provided_id": idStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid recommendationID in URL")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"recommendation_id": id})
	handlerLogger.Info("Processing request to get recommendation by id", nil)

	rec, err := h.getByIDUC.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecommendationNotFound) {
			handlerLogger.Warn("Recommendation not found", nil)
			WriteJSONError(w, http.StatusNotFound, "Recommendation not found")
			return
		}
		handlerLogger.Error("Get recommendation by id use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve recommendation")
		return
	}

	RespondWithJSON(w, http.StatusOK, toRecommendationResponse(*rec))
}

// UpdateRecommendationStatus обрабатывает PATCH /api/v1/recommendations/{recommendationID}/status
func (h *RecommendationHandler) UpdateRecommendationStatus(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateRecommendationStatus"})

	idStr := chi.URLParam(r, "recommendationID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		logger.Warn("Invalid recommendationID in URL", port.Fields{"provided_id": idStr})
		WriteJSONError(w, http.StatusBadRequest, "Invalid recommendationID in URL")
		return
	}

	var reqDTO UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		logger.Warn("Failed to decode request body for status update", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, err := domain.ParseRecommendationStatus(reqDTO.Status)
	if err != nil {
		logger.Warn("Invalid status in request", port.Fields{"provided_status": reqDTO.Status})
		WriteJSONError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"recommendation_id": id,
		"new_status":        status,
	})
	handlerLogger.Info("Processing request to update recommendation status", nil)

	rec, err := h.updateStatusUC.Execute(r.Context(), id, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecommendationNotFound):
			handlerLogger.Warn("Recommendation not found", nil)
			WriteJSONError(w, http.StatusNotFound, "Recommendation not found")
		case errors.Is(err, domain.ErrStatusTransition):
			handlerLogger.Warn("Disallowed status transition", port.Fields{"error": err.Error()})
			WriteJSONError(w, http.StatusConflict, err.Error())
		default:
			handlerLogger.Error("Update recommendation status use case failed", err, nil)
			WriteJSONError(w, http.StatusInternalServerError, "Failed to update recommendation status")
		}
		return
	}

	handlerLogger.Info("Successfully updated recommendation status", nil)
	RespondWithJSON(w, http.StatusOK, toRecommendationResponse(*rec))
}
