package service

import (
	"sort"

	"debt-agent/domain"
)

type debtLess func(a, b domain.Debt) bool

// Una función de comparación por estrategia, resuelta una sola vez por
// simulación. El orden calculado queda fijo durante toda la corrida y no se
// reevalúa cuando los balances cambian.
var strategyComparators = map[domain.Strategy]debtLess{
	domain.StrategySnowball: func(a, b domain.Debt) bool {
		return a.Balance < b.Balance
	},
	domain.StrategyAvalanche: func(a, b domain.Debt) bool {
		return a.APR > b.APR
	},
	domain.StrategyCustom: customOrderLess,
}

// customOrderLess ordena por CustomOrder cuando ambas deudas lo tienen; si
// alguna no lo tiene cae al orden por balance ascendente. El empate lo
// resuelve la estabilidad del sort.
func customOrderLess(a, b domain.Debt) bool {
	if a.CustomOrder != nil && b.CustomOrder != nil {
		return *a.CustomOrder < *b.CustomOrder
	}
	return a.Balance < b.Balance
}

// IsPayoffStrategy reporta si la estrategia es una de las órdenes de pago
// soportadas (snowball, avalanche, custom).
func IsPayoffStrategy(strategy domain.Strategy) bool {
	_, ok := strategyComparators[strategy]
	return ok
}

// OrderDebtsByStrategy devuelve una copia de las deudas ordenada según la
// estrategia, con sort estable para que el orden de entrada desempate.
func OrderDebtsByStrategy(debts []domain.Debt, strategy domain.Strategy) []domain.Debt {
	ordered := make([]domain.Debt, len(debts))
	copy(ordered, debts)

	less, ok := strategyComparators[strategy]
	if !ok {
		return ordered
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})
	return ordered
}
