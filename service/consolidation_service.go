package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"debt-agent/domain"

	"github.com/google/uuid"
)

// Tipos de deuda que pueden consolidarse. Hipotecas y préstamos de auto
// quedan fuera por estar garantizados con un bien.
var consolidatableTypes = map[domain.DebtType]bool{
	domain.DebtTypeCreditCard:      true,
	domain.DebtTypePersonalLoan:    true,
	domain.DebtTypeInstallmentLoan: true,
	domain.DebtTypeStudentLoan:     true,
}

// CanConsolidate reporta si una deuda es elegible para consolidación.
func CanConsolidate(debt domain.Debt) bool {
	return consolidatableTypes[debt.Type]
}

type ConsolidationService struct {
	scenarios *ScenarioService
}

func NewConsolidationService(scenarios *ScenarioService) *ConsolidationService {
	return &ConsolidationService{scenarios: scenarios}
}

// SimulateConsolidation fusiona las deudas elegibles en un préstamo nuevo
// (con comisión de originación sobre el principal) y simula el pago del
// conjunto resultante. Las deudas solicitadas que no son elegibles se
// excluyen con una advertencia y siguen como deudas separadas.
func (s *ConsolidationService) SimulateConsolidation(
	debts []domain.Debt,
	debtIDs []string,
	newAPR float64,
	newTermMonths int,
	monthlyPayment float64,
	originationFeePercent float64,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	if len(debts) == 0 {
		return domain.PayoffScenario{}, errors.New("no se proporcionaron deudas")
	}
	if newTermMonths <= 0 || newTermMonths > MaxTermMonths {
		return domain.PayoffScenario{}, errors.New("plazo inválido")
	}
	if newAPR < 0 {
		return domain.PayoffScenario{}, errors.New("tasa inválida")
	}
	if originationFeePercent < 0 {
		return domain.PayoffScenario{}, errors.New("comisión de originación inválida")
	}

	requested := make(map[string]bool, len(debtIDs))
	for _, id := range debtIDs {
		requested[id] = true
	}

	var eligible []domain.Debt
	var excluded []string
	var remaining []domain.Debt
	for _, d := range debts {
		switch {
		case !requested[d.ID]:
			remaining = append(remaining, d)
		case CanConsolidate(d):
			eligible = append(eligible, d)
		default:
			excluded = append(excluded, d.Name)
			remaining = append(remaining, d)
		}
	}

	if len(eligible) == 0 {
		return domain.PayoffScenario{}, errors.New("ninguna de las deudas seleccionadas es elegible para consolidación")
	}
	if len(excluded) > 0 {
		log.Printf("Warning: %d debts excluded from consolidation (secured or ineligible): %s",
			len(excluded), strings.Join(excluded, ", "))
	}

	totalBalance := 0.0
	consolidatedIDs := make([]string, 0, len(eligible))
	consolidatedNames := make([]string, 0, len(eligible))
	for _, d := range eligible {
		totalBalance += d.Balance
		consolidatedIDs = append(consolidatedIDs, d.ID)
		consolidatedNames = append(consolidatedNames, d.Name)
	}

	originationFee := totalBalance * originationFeePercent / 100
	consolidatedBalance := totalBalance + originationFee

	consolidated := domain.Debt{
		ID:              "consolidated",
		Type:            domain.DebtTypePersonalLoan,
		Name:            "Consolidated Loan",
		Balance:         consolidatedBalance,
		APR:             newAPR,
		MinimumPayment:  consolidatedBalance / float64(newTermMonths),
		NextPaymentDate: startDate.AddDate(0, 1, 0),
	}

	all := make([]domain.Debt, 0, len(remaining)+1)
	all = append(all, remaining...)
	all = append(all, consolidated)

	// La consolidación corre siempre con orden avalanche, sin importar la
	// estrategia que el llamador use en sus otros escenarios.
	ordered := OrderDebtsByStrategy(all, domain.StrategyAvalanche)
	schedule, months, totalInterest, totalPaid := s.scenarios.runSchedule(ordered, monthlyPayment, startDate, nil)

	scenario := domain.PayoffScenario{
		ID:             uuid.NewString(),
		Name:           fmt.Sprintf("Consolidation at %.2f%% APR", newAPR),
		Strategy:       domain.StrategyConsolidation,
		MonthlyPayment: roundTo2Decimals(monthlyPayment),
		StartDate:      startDate,
		TotalMonths:    months,
		TotalInterest:  totalInterest,
		TotalPaid:      totalPaid,
		PayoffDate:     startDate.AddDate(0, months, 0),
		Schedule:       schedule,
		ConsolidationEvent: &domain.ConsolidationEvent{
			Month:                    0,
			DebtIDs:                  consolidatedIDs,
			DebtNames:                consolidatedNames,
			TotalConsolidatedBalance: roundTo2Decimals(totalBalance),
			NewDebtID:                consolidated.ID,
			NewDebtName:              consolidated.Name,
			NewAPR:                   newAPR,
			NewTermMonths:            newTermMonths,
			OriginationFee:           roundTo2Decimals(originationFee),
		},
	}

	s.scenarios.store("", scenario)
	return scenario, nil
}
