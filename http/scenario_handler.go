package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"debt-agent/domain"
	"debt-agent/service"
)

type ScenarioHandler struct {
	scenarios      *service.ScenarioService
	consolidations *service.ConsolidationService
	settlements    *service.SettlementService
	whatIfs        *service.WhatIfService
}

func NewScenarioHandler(
	scenarios *service.ScenarioService,
	consolidations *service.ConsolidationService,
	settlements *service.SettlementService,
	whatIfs *service.WhatIfService,
) *ScenarioHandler {
	return &ScenarioHandler{
		scenarios:      scenarios,
		consolidations: consolidations,
		settlements:    settlements,
		whatIfs:        whatIfs,
	}
}

// parseStartDate acepta "YYYY-MM-DD"; vacío significa hoy (UTC, medianoche).
func parseStartDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", value)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}

	contentType := r.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("Error decoding request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeJSON codifica en buffer primero para no escribir headers si la
// serialización falla.
func writeJSON(w http.ResponseWriter, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func (h *ScenarioHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req domain.SimulateScenarioRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	scenario, err := h.scenarios.CalculatePayoffScenario(req.Debts, req.Strategy, req.MonthlyPayment, startDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, scenario)
}

func (h *ScenarioHandler) SimulateConsolidation(w http.ResponseWriter, r *http.Request) {
	var req domain.ConsolidationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	scenario, err := h.consolidations.SimulateConsolidation(
		req.Debts, req.DebtIDs, req.NewAPR, req.NewTermMonths,
		req.MonthlyPayment, req.OriginationFeePercent, startDate,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, scenario)
}

func (h *ScenarioHandler) SimulateSettlement(w http.ResponseWriter, r *http.Request) {
	var req domain.SettlementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	scenario, err := h.settlements.SimulateSettlement(
		req.Debts, req.DebtID, req.SettlementPercentage, req.SettlementMonth,
		req.MonthlyProgramPayment, req.MonthlyPayment, startDate,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, scenario)
}

func (h *ScenarioHandler) SimulateBalanceTransfer(w http.ResponseWriter, r *http.Request) {
	var req domain.BalanceTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	scenario, err := h.whatIfs.SimulateBalanceTransfer(
		req.Debts, req.DebtID, req.NewAPR, req.TransferFeePercent,
		req.Strategy, req.MonthlyPayment, startDate,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, scenario)
}

func (h *ScenarioHandler) SimulateRateChange(w http.ResponseWriter, r *http.Request) {
	var req domain.RateChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		http.Error(w, "invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	scenario, err := h.whatIfs.SimulateRateChange(
		req.Debts, req.DebtID, req.NewAPR,
		req.Strategy, req.MonthlyPayment, startDate,
	)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, scenario)
}

func (h *ScenarioHandler) GenerateTimelines(w http.ResponseWriter, r *http.Request) {
	var req domain.TimelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	timelines := service.GenerateDebtTimelines(req.Scenario, req.Debts)
	writeJSON(w, timelines)
}
