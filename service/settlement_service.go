package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"debt-agent/domain"

	"github.com/google/uuid"
)

var settleableTypes = map[domain.DebtType]bool{
	domain.DebtTypeCreditCard:      true,
	domain.DebtTypePersonalLoan:    true,
	domain.DebtTypeInstallmentLoan: true,
}

// CanSettle reporta si una deuda es elegible para un acuerdo de liquidación.
// Los préstamos estudiantiles solo califican cuando son privados.
func CanSettle(debt domain.Debt) bool {
	if settleableTypes[debt.Type] {
		return true
	}
	return debt.Type == domain.DebtTypeStudentLoan && debt.LoanProgram == domain.LoanProgramPrivate
}

func settlementEligibilityError(debt domain.Debt) error {
	if settleableTypes[debt.Type] {
		return nil
	}
	if debt.Type == domain.DebtTypeStudentLoan {
		if debt.LoanProgram == domain.LoanProgramPrivate {
			return nil
		}
		return errors.New("los préstamos estudiantiles federales no pueden liquidarse")
	}
	return fmt.Errorf("las deudas de tipo %s no son elegibles para liquidación", debt.Type)
}

type SettlementService struct {
	scenarios *ScenarioService
}

func NewSettlementService(scenarios *ScenarioService) *SettlementService {
	return &SettlementService{scenarios: scenarios}
}

// SimulateSettlement corre la simulación base (siempre en orden avalanche)
// inyectando un evento único en el mes acordado: el balance de la deuda
// objetivo se fuerza al porcentaje negociado de su balance original. El
// monto perdonado viaja en el campo principal de la entrada de ese mes, con
// pago e interés en cero; los consumidores existentes dependen de esa
// codificación. Después del evento la deuda sigue acumulando interés y
// recibiendo pagos como cualquier otra.
func (s *SettlementService) SimulateSettlement(
	debts []domain.Debt,
	debtID string,
	settlementPercentage float64,
	settlementMonth int,
	monthlyProgramPayment float64,
	monthlyPayment float64,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	if len(debts) == 0 {
		return domain.PayoffScenario{}, errors.New("no se proporcionaron deudas")
	}
	if settlementPercentage <= 0 || settlementPercentage > 100 {
		return domain.PayoffScenario{}, errors.New("porcentaje de liquidación inválido")
	}
	if settlementMonth < 1 || settlementMonth > s.scenarios.maxMonths {
		return domain.PayoffScenario{}, errors.New("mes de liquidación inválido")
	}

	var target *domain.Debt
	for i := range debts {
		if debts[i].ID == debtID {
			target = &debts[i]
			break
		}
	}
	if target == nil {
		return domain.PayoffScenario{}, fmt.Errorf("deuda no encontrada: %s", debtID)
	}
	if err := settlementEligibilityError(*target); err != nil {
		return domain.PayoffScenario{}, err
	}

	settledAmount := target.Balance * settlementPercentage / 100

	event := domain.SettlementEvent{
		Month:           settlementMonth,
		DebtID:          target.ID,
		DebtName:        target.Name,
		OriginalBalance: roundTo2Decimals(target.Balance),
		SettledAmount:   roundTo2Decimals(settledAmount),
		ProgramPayment:  roundTo2Decimals(monthlyProgramPayment),
	}

	applied := false
	hook := scheduleEvent{
		month: settlementMonth,
		apply: func(working []*workingDebt) map[string]monthResult {
			for _, wd := range working {
				if wd.debt.ID != debtID || wd.settled {
					continue
				}
				if wd.remainingBalance <= DebtBalanceTolerance {
					// Ya estaba pagada; no hay nada que liquidar.
					return nil
				}
				forgiven := wd.remainingBalance - settledAmount
				wd.remainingBalance = settledAmount
				wd.settled = true
				applied = true
				event.ForgivenAmount = roundTo2Decimals(forgiven)
				return map[string]monthResult{debtID: {principal: forgiven}}
			}
			return nil
		},
	}

	ordered := OrderDebtsByStrategy(debts, domain.StrategyAvalanche)
	schedule, months, totalInterest, totalPaid := s.scenarios.runSchedule(ordered, monthlyPayment, startDate, []scheduleEvent{hook})

	scenario := domain.PayoffScenario{
		ID:             uuid.NewString(),
		Name:           fmt.Sprintf("Settlement of %s at %.0f%%", target.Name, settlementPercentage),
		Strategy:       domain.StrategySettlement,
		MonthlyPayment: roundTo2Decimals(monthlyPayment),
		StartDate:      startDate,
		TotalMonths:    months,
		TotalInterest:  totalInterest,
		TotalPaid:      totalPaid,
		PayoffDate:     startDate.AddDate(0, months, 0),
		Schedule:       schedule,
	}

	if applied {
		scenario.SettlementEvents = []domain.SettlementEvent{event}
	} else {
		log.Printf("Warning: settlement for debt %s at month %d was never applied (debt paid off earlier)", debtID, settlementMonth)
	}

	s.scenarios.store("", scenario)
	return scenario, nil
}
