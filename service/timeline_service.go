package service

import "debt-agent/domain"

type debtMonthKey struct {
	debtID string
	month  int
}

// GenerateDebtTimelines deriva la vista por deuda de un escenario ya
// calculado: curva de balance mes a mes, totales pagados y mes de pago
// final. Las deudas fusionadas en una consolidación no tienen entradas en
// el cronograma y se marcan con IsConsolidated.
func GenerateDebtTimelines(scenario domain.PayoffScenario, debts []domain.Debt) []domain.DebtTimeline {
	consolidated := map[string]bool{}
	if scenario.ConsolidationEvent != nil {
		for _, id := range scenario.ConsolidationEvent.DebtIDs {
			consolidated[id] = true
		}
	}

	forgivenByMonth := map[debtMonthKey]float64{}
	for _, ev := range scenario.SettlementEvents {
		forgivenByMonth[debtMonthKey{ev.DebtID, ev.Month}] = ev.ForgivenAmount
	}

	timelines := make([]domain.DebtTimeline, 0, len(debts))
	for _, d := range debts {
		timeline := domain.DebtTimeline{
			DebtID:          d.ID,
			DebtName:        d.Name,
			OriginalBalance: d.Balance,
			PayoffMonth:     scenario.TotalMonths,
		}

		if consolidated[d.ID] {
			// Fusionada en el préstamo consolidado en el mes 0.
			timeline.IsConsolidated = true
			timeline.PayoffMonth = 0
			timelines = append(timelines, timeline)
			continue
		}

		paidOffSeen := false
		for _, item := range scenario.Schedule {
			if item.DebtID != d.ID {
				continue
			}

			balance := domain.MonthlyBalance{Month: item.Month, Balance: item.RemainingBalance}
			if forgiven, ok := forgivenByMonth[debtMonthKey{d.ID, item.Month}]; ok {
				balance.ForgivenAmount = forgiven
			}
			timeline.MonthlyBalances = append(timeline.MonthlyBalances, balance)

			timeline.TotalPaid += item.Payment
			timeline.TotalInterest += item.Interest

			if !paidOffSeen && item.RemainingBalance <= DebtBalanceTolerance {
				timeline.PayoffMonth = item.Month
				paidOffSeen = true
			}
		}

		timeline.TotalPaid = roundTo2Decimals(timeline.TotalPaid)
		timeline.TotalInterest = roundTo2Decimals(timeline.TotalInterest)
		timelines = append(timelines, timeline)
	}

	return timelines
}
