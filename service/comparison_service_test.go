package service

import (
	"testing"

	"debt-agent/domain"
)

func newTestComparisonService() *ComparisonService {
	return NewComparisonService(newTestScenarioService(&MockScenarioRepository{}))
}

func TestCompareScenarios(t *testing.T) {

	a := domain.PayoffScenario{TotalInterest: 400, TotalMonths: 20, MonthlyPayment: 150, TotalPaid: 1900}
	b := domain.PayoffScenario{TotalInterest: 700, TotalMonths: 30, MonthlyPayment: 100, TotalPaid: 2200}

	comparison := CompareScenarios(a, b)

	if comparison.InterestSavings != 300 {
		t.Errorf("expected interest savings of 300, got %.2f", comparison.InterestSavings)
	}
	if comparison.TimeSavingsMonths != 10 {
		t.Errorf("expected time savings of 10 months, got %d", comparison.TimeSavingsMonths)
	}
	if comparison.MonthlyPaymentDifference != 50 {
		t.Errorf("expected payment difference of 50, got %.2f", comparison.MonthlyPaymentDifference)
	}
	if comparison.TotalSavings != 300 {
		t.Errorf("expected total savings of 300, got %.2f", comparison.TotalSavings)
	}
}

func TestCalculateMinimumPaymentScenario(t *testing.T) {

	service := newTestComparisonService()

	scenario, err := service.CalculateMinimumPaymentScenario(twoDebts(), testStartDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if scenario.Name != "Minimum Payments Only" {
		t.Errorf("unexpected scenario name: %s", scenario.Name)
	}
	if scenario.MonthlyPayment != 50 {
		t.Errorf("expected monthly payment equal to sum of minimums (50), got %.2f", scenario.MonthlyPayment)
	}
}

func TestRecommendStrategy(t *testing.T) {

	service := newTestComparisonService()

	recommendation, err := service.RecommendStrategy(twoDebts(), 100, testStartDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Con APRs distintos, avalanche nunca paga más interés que snowball.
	if recommendation.Avalanche.TotalInterest > recommendation.Snowball.TotalInterest {
		t.Errorf("avalanche interest %.2f exceeds snowball %.2f",
			recommendation.Avalanche.TotalInterest, recommendation.Snowball.TotalInterest)
	}
	if recommendation.RecommendedStrategy != domain.StrategySnowball &&
		recommendation.RecommendedStrategy != domain.StrategyAvalanche {
		t.Errorf("unexpected recommended strategy: %s", recommendation.RecommendedStrategy)
	}

	if recommendation.ConfidenceScore <= 0 || recommendation.ConfidenceScore > 100 {
		t.Errorf("confidence score out of range: %.2f", recommendation.ConfidenceScore)
	}
	if recommendation.Rationale == "" {
		t.Errorf("expected a non-empty rationale")
	}
	if len(recommendation.Factors) == 0 {
		t.Errorf("expected at least one factor")
	}

	// La comparación contra el escenario de solo mínimos debe favorecer al
	// presupuesto mayor.
	if recommendation.ComparisonToMinimum.InterestSavings < 0 {
		t.Errorf("expected non-negative interest savings over minimum payments, got %.2f",
			recommendation.ComparisonToMinimum.InterestSavings)
	}
	if recommendation.ComparisonToMinimum.TimeSavingsMonths < 0 {
		t.Errorf("expected non-negative time savings over minimum payments, got %d",
			recommendation.ComparisonToMinimum.TimeSavingsMonths)
	}
}

func TestRecommendStrategy_NoDebts(t *testing.T) {

	service := newTestComparisonService()

	if _, err := service.RecommendStrategy(nil, 100, testStartDate); err == nil {
		t.Errorf("expected error for empty debt list")
	}
}

func TestConfidenceScore(t *testing.T) {

	// Perfil completo, portafolio chico, sin morosidad, flujo holgado:
	// confianza plena.
	if got := confidenceScore(1.0, 2, false, 2.0); got != 100 {
		t.Errorf("expected 100, got %.2f", got)
	}

	// Morosidad y presupuesto justo recortan la confianza.
	if got := confidenceScore(1.0, 2, true, 1.0); got != 56 {
		t.Errorf("expected 56, got %.2f", got)
	}

	// Portafolio grande: 100 × 0.8.
	if got := confidenceScore(1.0, 12, false, 2.0); got != 80 {
		t.Errorf("expected 80, got %.2f", got)
	}

	// Perfil a medias escala todo lo demás: 100 × 0.5 × 0.7 × 0.8.
	if got := confidenceScore(0.5, 2, true, 1.0); got != 28 {
		t.Errorf("expected 28, got %.2f", got)
	}
}
