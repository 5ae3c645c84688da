package domain

// MonthlyBalance es un punto de la curva de balance de una deuda.
type MonthlyBalance struct {
	Month          int     `json:"month"`
	Balance        float64 `json:"balance"`
	ForgivenAmount float64 `json:"forgivenAmount,omitempty"`
}

// DebtTimeline es la vista por deuda derivada de un escenario completo.
type DebtTimeline struct {
	DebtID          string           `json:"debtId"`
	DebtName        string           `json:"debtName"`
	OriginalBalance float64          `json:"originalBalance"`
	MonthlyBalances []MonthlyBalance `json:"monthlyBalances"`
	TotalPaid       float64          `json:"totalPaid"`
	TotalInterest   float64          `json:"totalInterest"`
	PayoffMonth     int              `json:"payoffMonth"`
	IsConsolidated  bool             `json:"isConsolidated,omitempty"`
}
