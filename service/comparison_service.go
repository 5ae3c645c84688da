package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"debt-agent/domain"

	"golang.org/x/sync/errgroup"
)

type ComparisonService struct {
	scenarios *ScenarioService
	aiService *AIService
}

func NewComparisonService(scenarios *ScenarioService) *ComparisonService {
	return &ComparisonService{
		scenarios: scenarios,
		aiService: NewAIService(),
	}
}

// CalculateMinimumPaymentScenario genera el escenario base pagando solo los
// mínimos, usado como línea de comparación.
func (s *ComparisonService) CalculateMinimumPaymentScenario(
	debts []domain.Debt,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	totalMinimums := 0.0
	for _, d := range debts {
		totalMinimums += d.MinimumPayment
	}

	scenario, err := s.scenarios.CalculatePayoffScenario(debts, domain.StrategyAvalanche, totalMinimums, startDate)
	if err != nil {
		return domain.PayoffScenario{}, err
	}
	scenario.Name = "Minimum Payments Only"
	return scenario, nil
}

// CompareScenarios devuelve las diferencias clave del escenario A frente
// al B.
func CompareScenarios(a, b domain.PayoffScenario) domain.ScenarioComparison {
	return domain.ScenarioComparison{
		InterestSavings:          roundTo2Decimals(b.TotalInterest - a.TotalInterest),
		TimeSavingsMonths:        b.TotalMonths - a.TotalMonths,
		MonthlyPaymentDifference: roundTo2Decimals(a.MonthlyPayment - b.MonthlyPayment),
		TotalSavings:             roundTo2Decimals(b.TotalPaid - a.TotalPaid),
	}
}

// RecommendStrategy simula snowball, avalanche y el escenario de solo
// mínimos en paralelo, y recomienda la estrategia con menor interés total.
func (s *ComparisonService) RecommendStrategy(
	debts []domain.Debt,
	monthlyPayment float64,
	startDate time.Time,
) (domain.StrategyRecommendation, error) {

	if len(debts) == 0 {
		return domain.StrategyRecommendation{}, errors.New("no se proporcionaron deudas")
	}

	var snowball, avalanche, baseline domain.PayoffScenario
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		snowball, err = s.scenarios.CalculatePayoffScenario(debts, domain.StrategySnowball, monthlyPayment, startDate)
		return err
	})
	g.Go(func() error {
		var err error
		avalanche, err = s.scenarios.CalculatePayoffScenario(debts, domain.StrategyAvalanche, monthlyPayment, startDate)
		return err
	})
	g.Go(func() error {
		var err error
		baseline, err = s.CalculateMinimumPaymentScenario(debts, startDate)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.StrategyRecommendation{}, err
	}

	recommended := domain.StrategySnowball
	best := snowball
	if avalanche.TotalInterest < snowball.TotalInterest {
		recommended = domain.StrategyAvalanche
		best = avalanche
	}

	totalDebt := 0.0
	totalMinimums := 0.0
	hasDelinquent := false
	for _, d := range debts {
		totalDebt += d.Balance
		totalMinimums += d.MinimumPayment
		if d.IsDelinquent {
			hasDelinquent = true
		}
	}

	cashFlowRatio := 0.0
	if totalMinimums > 0 {
		cashFlowRatio = monthlyPayment / totalMinimums
	}

	interestDifference := roundTo2Decimals(math.Abs(snowball.TotalInterest - avalanche.TotalInterest))

	factors := []string{fmt.Sprintf("%d debts in portfolio", len(debts))}
	if interestDifference > 0 {
		factors = append(factors, fmt.Sprintf("%s saves $%.2f in interest", recommended, interestDifference))
	}
	if hasDelinquent {
		factors = append(factors, "delinquent debts in portfolio")
	}
	if cashFlowRatio > 0 && cashFlowRatio < 1.1 {
		factors = append(factors, "monthly budget barely covers minimum payments")
	}

	recommendation := domain.StrategyRecommendation{
		RecommendedStrategy:  recommended,
		ConfidenceScore:      confidenceScore(1.0, len(debts), hasDelinquent, cashFlowRatio),
		Snowball:             snowball,
		Avalanche:            avalanche,
		InterestDifference:   interestDifference,
		TimeDifferenceMonths: snowball.TotalMonths - avalanche.TotalMonths,
		ComparisonToMinimum:  CompareScenarios(best, baseline),
		Factors:              factors,
	}
	recommendation.Rationale = s.aiService.GenerateStrategyExplanation(recommended, totalDebt, snowball, avalanche)

	return recommendation, nil
}

// confidenceScore penaliza la confianza según la completitud del perfil
// (0-1), el tamaño del portafolio, la morosidad y la holgura del flujo de
// caja sobre los mínimos. Este servicio no maneja perfiles, así que los
// llamadores pasan completitud 1.0.
func confidenceScore(profileCompleteness float64, debtCount int, hasDelinquent bool, cashFlowRatio float64) float64 {
	score := 100.0 * profileCompleteness

	if debtCount > 10 {
		score *= 0.8
	} else if debtCount > 5 {
		score *= 0.9
	}

	if hasDelinquent {
		score *= 0.7
	}

	if cashFlowRatio < 1.1 {
		score *= 0.8
	} else if cashFlowRatio < 1.2 {
		score *= 0.9
	}

	return roundTo2Decimals(math.Max(0, math.Min(100, score)))
}
