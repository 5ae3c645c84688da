package http

import (
	"net/http"

	"debt-agent/domain"
	"debt-agent/service"
)

type StrategyRecommendationHandler struct {
	service *service.ComparisonService
}

func NewStrategyRecommendationHandler(service *service.ComparisonService) *StrategyRecommendationHandler {
	return &StrategyRecommendationHandler{service: service}
}

func (h *StrategyRecommendationHandler) RecommendStrategy(w http.ResponseWriter, r *http.Request) {
	var req domain.StrategyRecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	recommendation, err := h.service.RecommendStrategy(req.Debts, req.MonthlyPayment, startDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, recommendation)
}
