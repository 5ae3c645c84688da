package service

import (
	"errors"
	"fmt"
	"time"

	"debt-agent/domain"

	"github.com/google/uuid"
)

// WhatIfService corre variantes hipotéticas sobre el portafolio: transferir
// un balance a otra tasa o cambiar la tasa de una deuda. Ambas son
// preprocesos sobre una copia de las deudas; la simulación es la misma de
// siempre, con la estrategia que pida el llamador.
type WhatIfService struct {
	scenarios *ScenarioService
}

func NewWhatIfService(scenarios *ScenarioService) *WhatIfService {
	return &WhatIfService{scenarios: scenarios}
}

func cloneDebtWithID(debts []domain.Debt, debtID string) ([]domain.Debt, *domain.Debt, error) {
	cloned := make([]domain.Debt, len(debts))
	copy(cloned, debts)
	for i := range cloned {
		if cloned[i].ID == debtID {
			return cloned, &cloned[i], nil
		}
	}
	return nil, nil, fmt.Errorf("deuda no encontrada: %s", debtID)
}

// SimulateBalanceTransfer mueve el balance de una deuda a una tasa nueva,
// cargando la comisión de transferencia sobre el balance transferido.
func (s *WhatIfService) SimulateBalanceTransfer(
	debts []domain.Debt,
	debtID string,
	newAPR float64,
	transferFeePercent float64,
	strategy domain.Strategy,
	monthlyPayment float64,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	if len(debts) == 0 {
		return domain.PayoffScenario{}, errors.New("no se proporcionaron deudas")
	}
	if newAPR < 0 {
		return domain.PayoffScenario{}, errors.New("tasa inválida")
	}
	if transferFeePercent < 0 {
		return domain.PayoffScenario{}, errors.New("comisión de transferencia inválida")
	}
	if !IsPayoffStrategy(strategy) {
		return domain.PayoffScenario{}, errors.New("estrategia inválida")
	}

	cloned, target, err := cloneDebtWithID(debts, debtID)
	if err != nil {
		return domain.PayoffScenario{}, err
	}

	target.Balance += target.Balance * transferFeePercent / 100
	target.APR = newAPR

	name := fmt.Sprintf("Balance Transfer to %.2f%% APR", newAPR)
	return s.run(cloned, strategy, monthlyPayment, startDate, name)
}

// SimulateRateChange recalcula el plan con la tasa de una deuda cambiada,
// por ejemplo al vencer una tasa promocional.
func (s *WhatIfService) SimulateRateChange(
	debts []domain.Debt,
	debtID string,
	newAPR float64,
	strategy domain.Strategy,
	monthlyPayment float64,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	if len(debts) == 0 {
		return domain.PayoffScenario{}, errors.New("no se proporcionaron deudas")
	}
	if newAPR < 0 {
		return domain.PayoffScenario{}, errors.New("tasa inválida")
	}
	if !IsPayoffStrategy(strategy) {
		return domain.PayoffScenario{}, errors.New("estrategia inválida")
	}

	cloned, target, err := cloneDebtWithID(debts, debtID)
	if err != nil {
		return domain.PayoffScenario{}, err
	}

	oldAPR := target.APR
	target.APR = newAPR

	name := fmt.Sprintf("Rate Change: %.2f%% to %.2f%% APR", oldAPR, newAPR)
	return s.run(cloned, strategy, monthlyPayment, startDate, name)
}

func (s *WhatIfService) run(
	debts []domain.Debt,
	strategy domain.Strategy,
	monthlyPayment float64,
	startDate time.Time,
	name string,
) (domain.PayoffScenario, error) {

	ordered := OrderDebtsByStrategy(debts, strategy)
	schedule, months, totalInterest, totalPaid := s.scenarios.runSchedule(ordered, monthlyPayment, startDate, nil)

	scenario := domain.PayoffScenario{
		ID:             uuid.NewString(),
		Name:           name,
		Strategy:       strategy,
		MonthlyPayment: roundTo2Decimals(monthlyPayment),
		StartDate:      startDate,
		TotalMonths:    months,
		TotalInterest:  totalInterest,
		TotalPaid:      totalPaid,
		PayoffDate:     startDate.AddDate(0, months, 0),
		Schedule:       schedule,
	}

	s.scenarios.store("", scenario)
	return scenario, nil
}
