package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"debt-agent/config"
	"debt-agent/domain"
	"debt-agent/repository"
	"debt-agent/service"
)

func newTestHandlers() (*ScenarioHandler, *StrategyRecommendationHandler) {
	scenarios := service.NewScenarioService(
		repository.NewScenarioRepositoryMemory(),
		repository.NewMockCache(),
		config.DefaultCalculationParams(),
	)
	consolidations := service.NewConsolidationService(scenarios)
	settlements := service.NewSettlementService(scenarios)
	whatIfs := service.NewWhatIfService(scenarios)
	comparisons := service.NewComparisonService(scenarios)

	return NewScenarioHandler(scenarios, consolidations, settlements, whatIfs),
		NewStrategyRecommendationHandler(comparisons)
}

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

const simulateBody = `{
	"debts": [
		{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30},
		{"id": "b", "type": "personal-loan", "name": "Loan B", "balance": 500, "apr": 12, "minimumPayment": 20}
	],
	"strategy": "avalanche",
	"monthlyPayment": 100,
	"startDate": "2026-01-01"
}`

func TestSimulateHandler(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	rec := postJSON(scenarioHandler.Simulate, simulateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var scenario domain.PayoffScenario
	if err := json.Unmarshal(rec.Body.Bytes(), &scenario); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if scenario.Strategy != domain.StrategyAvalanche {
		t.Errorf("expected avalanche strategy, got %s", scenario.Strategy)
	}
	if scenario.TotalMonths <= 0 {
		t.Errorf("expected positive total months, got %d", scenario.TotalMonths)
	}
	if len(scenario.Schedule) == 0 {
		t.Errorf("expected a non-empty schedule")
	}
	if scenario.ID == "" {
		t.Errorf("expected a scenario id")
	}
}

func TestSimulateHandler_MethodNotAllowed(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	scenarioHandler.Simulate(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", rec.Code)
	}
}

func TestSimulateHandler_InvalidBody(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	rec := postJSON(scenarioHandler.Simulate, `{"debts": [`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestSimulateHandler_InvalidStartDate(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := strings.Replace(simulateBody, "2026-01-01", "01/01/2026", 1)
	rec := postJSON(scenarioHandler.Simulate, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestSimulateHandler_UnsupportedContentType(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(simulateBody))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	scenarioHandler.Simulate(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("expected status 415, got %d", rec.Code)
	}
}

func TestSimulateConsolidationHandler(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := `{
		"debts": [
			{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30},
			{"id": "b", "type": "credit-card", "name": "Card B", "balance": 2000, "apr": 22, "minimumPayment": 60}
		],
		"debtIds": ["a", "b"],
		"newApr": 10,
		"newTermMonths": 36,
		"monthlyPayment": 200,
		"originationFeePercent": 2,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(scenarioHandler.SimulateConsolidation, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var scenario domain.PayoffScenario
	if err := json.Unmarshal(rec.Body.Bytes(), &scenario); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if scenario.ConsolidationEvent == nil {
		t.Fatalf("expected a consolidation event in the response")
	}
	if scenario.ConsolidationEvent.OriginationFee != 60 {
		t.Errorf("expected origination fee of 60, got %.2f", scenario.ConsolidationEvent.OriginationFee)
	}
}

func TestSimulateSettlementHandler_IneligibleDebt(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := `{
		"debts": [
			{"id": "sl", "type": "student-loan", "loanProgram": "federal", "name": "Student", "balance": 20000, "apr": 6, "minimumPayment": 250}
		],
		"debtId": "sl",
		"settlementPercentage": 50,
		"settlementMonth": 3,
		"monthlyProgramPayment": 100,
		"monthlyPayment": 400,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(scenarioHandler.SimulateSettlement, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "federales") {
		t.Errorf("expected eligibility reason in response, got %q", rec.Body.String())
	}
}

func TestSimulateSettlementHandler(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := `{
		"debts": [
			{"id": "cc", "type": "credit-card", "name": "Card", "balance": 10000, "apr": 20, "minimumPayment": 200}
		],
		"debtId": "cc",
		"settlementPercentage": 40,
		"settlementMonth": 6,
		"monthlyProgramPayment": 150,
		"monthlyPayment": 300,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(scenarioHandler.SimulateSettlement, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var scenario domain.PayoffScenario
	if err := json.Unmarshal(rec.Body.Bytes(), &scenario); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(scenario.SettlementEvents) != 1 {
		t.Fatalf("expected one settlement event, got %d", len(scenario.SettlementEvents))
	}
	if scenario.SettlementEvents[0].SettledAmount != 4000 {
		t.Errorf("expected settled amount of 4000, got %.2f", scenario.SettlementEvents[0].SettledAmount)
	}
}

func TestSimulateBalanceTransferHandler(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := `{
		"debts": [
			{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30},
			{"id": "b", "type": "personal-loan", "name": "Loan B", "balance": 500, "apr": 12, "minimumPayment": 20}
		],
		"debtId": "a",
		"newApr": 5,
		"transferFeePercent": 3,
		"strategy": "avalanche",
		"monthlyPayment": 100,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(scenarioHandler.SimulateBalanceTransfer, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var scenario domain.PayoffScenario
	if err := json.Unmarshal(rec.Body.Bytes(), &scenario); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if !strings.Contains(scenario.Name, "Balance Transfer") {
		t.Errorf("unexpected scenario name: %s", scenario.Name)
	}
	if len(scenario.Schedule) == 0 {
		t.Errorf("expected a non-empty schedule")
	}
}

func TestSimulateRateChangeHandler_UnknownDebt(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	body := `{
		"debts": [
			{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30}
		],
		"debtId": "nope",
		"newApr": 10,
		"strategy": "snowball",
		"monthlyPayment": 100,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(scenarioHandler.SimulateRateChange, body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}

func TestGenerateTimelinesHandler(t *testing.T) {

	scenarioHandler, _ := newTestHandlers()

	rec := postJSON(scenarioHandler.Simulate, simulateBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate failed: %d", rec.Code)
	}

	body := `{"scenario": ` + rec.Body.String() + `, "debts": [
		{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30},
		{"id": "b", "type": "personal-loan", "name": "Loan B", "balance": 500, "apr": 12, "minimumPayment": 20}
	]}`

	rec = postJSON(scenarioHandler.GenerateTimelines, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var timelines []domain.DebtTimeline
	if err := json.Unmarshal(rec.Body.Bytes(), &timelines); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(timelines) != 2 {
		t.Errorf("expected 2 timelines, got %d", len(timelines))
	}
}

func TestRecommendStrategyHandler(t *testing.T) {

	_, recommendationHandler := newTestHandlers()

	body := `{
		"debts": [
			{"id": "a", "type": "credit-card", "name": "Card A", "balance": 1000, "apr": 24, "minimumPayment": 30},
			{"id": "b", "type": "personal-loan", "name": "Loan B", "balance": 500, "apr": 12, "minimumPayment": 20}
		],
		"monthlyPayment": 100,
		"startDate": "2026-01-01"
	}`

	rec := postJSON(recommendationHandler.RecommendStrategy, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var recommendation domain.StrategyRecommendation
	if err := json.Unmarshal(rec.Body.Bytes(), &recommendation); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if recommendation.RecommendedStrategy == "" {
		t.Errorf("expected a recommended strategy")
	}
	if recommendation.Rationale == "" {
		t.Errorf("expected a rationale")
	}
}

func TestRecommendStrategyHandler_NoDebts(t *testing.T) {

	_, recommendationHandler := newTestHandlers()

	rec := postJSON(recommendationHandler.RecommendStrategy, `{"debts": [], "monthlyPayment": 100}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
