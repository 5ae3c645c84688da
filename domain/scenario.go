package domain

import "time"

// Strategy identifica cómo se ordenan las deudas para la cascada de pagos.
// Los escenarios derivados (consolidación, liquidación) usan sus propias
// etiquetas aunque internamente corran con orden avalanche.
type Strategy string

const (
	StrategySnowball  Strategy = "snowball"  // menor balance primero
	StrategyAvalanche Strategy = "avalanche" // mayor APR primero
	StrategyCustom    Strategy = "custom"    // orden definido por el usuario

	StrategyConsolidation Strategy = "consolidation"
	StrategySettlement    Strategy = "settlement"
)

// PayoffScheduleItem es un pago de una deuda en un mes del cronograma.
// El mes 0 es la foto inicial: balance original, pago cero.
type PayoffScheduleItem struct {
	Month            int       `json:"month"`
	Date             time.Time `json:"date"`
	DebtID           string    `json:"debtId"`
	DebtName         string    `json:"debtName"`
	Payment          float64   `json:"payment"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	RemainingBalance float64   `json:"remainingBalance"`
}

// ConsolidationEvent registra la fusión de deudas en un préstamo nuevo.
// Siempre ocurre en el mes 0.
type ConsolidationEvent struct {
	Month                    int      `json:"month"`
	DebtIDs                  []string `json:"debtIds"`
	DebtNames                []string `json:"debtNames"`
	TotalConsolidatedBalance float64  `json:"totalConsolidatedBalance"`
	NewDebtID                string   `json:"newDebtId"`
	NewDebtName              string   `json:"newDebtName"`
	NewAPR                   float64  `json:"newApr"`
	NewTermMonths            int      `json:"newTermMonths"`
	OriginationFee           float64  `json:"originationFee"`
}

// SettlementEvent registra el perdón parcial único de una deuda.
type SettlementEvent struct {
	Month           int     `json:"month"`
	DebtID          string  `json:"debtId"`
	DebtName        string  `json:"debtName"`
	OriginalBalance float64 `json:"originalBalance"`
	SettledAmount   float64 `json:"settledAmount"`
	ForgivenAmount  float64 `json:"forgivenAmount"`
	ProgramPayment  float64 `json:"programPayment"`
}

// PayoffScenario es el resultado completo de una simulación. Los montos van
// en USD y los meses son índices enteros desde la fecha de inicio.
type PayoffScenario struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Strategy       Strategy  `json:"strategy"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	StartDate      time.Time `json:"startDate"`
	TotalMonths    int       `json:"totalMonths"`
	TotalInterest  float64   `json:"totalInterest"`
	TotalPaid      float64   `json:"totalPaid"`
	PayoffDate     time.Time `json:"payoffDate"`

	Schedule []PayoffScheduleItem `json:"schedule"`

	ConsolidationEvent *ConsolidationEvent `json:"consolidationEvent,omitempty"`
	SettlementEvents   []SettlementEvent   `json:"settlementEvents,omitempty"`
}

// ScenarioComparison compara el escenario A contra el B.
type ScenarioComparison struct {
	InterestSavings          float64 `json:"interestSavings"`
	TimeSavingsMonths        int     `json:"timeSavingsMonths"`
	MonthlyPaymentDifference float64 `json:"monthlyPaymentDifference"`
	TotalSavings             float64 `json:"totalSavings"`
}

// StrategyRecommendation compara snowball contra avalanche y recomienda una.
type StrategyRecommendation struct {
	RecommendedStrategy  Strategy           `json:"recommendedStrategy"`
	ConfidenceScore      float64            `json:"confidenceScore"`
	Rationale            string             `json:"rationale"`
	Snowball             PayoffScenario     `json:"snowballScenario"`
	Avalanche            PayoffScenario     `json:"avalancheScenario"`
	InterestDifference   float64            `json:"interestDifference"`
	TimeDifferenceMonths int                `json:"timeDifferenceMonths"`
	ComparisonToMinimum  ScenarioComparison `json:"comparisonToMinimum"`
	Factors              []string           `json:"factors"`
}

// Requests del API. StartDate viaja como "YYYY-MM-DD" y por defecto es hoy.

type SimulateScenarioRequest struct {
	Debts          []Debt   `json:"debts"`
	Strategy       Strategy `json:"strategy"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	StartDate      string   `json:"startDate,omitempty"`
}

type ConsolidationRequest struct {
	Debts                 []Debt   `json:"debts"`
	DebtIDs               []string `json:"debtIds"`
	NewAPR                float64  `json:"newApr"`
	NewTermMonths         int      `json:"newTermMonths"`
	MonthlyPayment        float64  `json:"monthlyPayment"`
	OriginationFeePercent float64  `json:"originationFeePercent"`
	StartDate             string   `json:"startDate,omitempty"`
}

type SettlementRequest struct {
	Debts                 []Debt  `json:"debts"`
	DebtID                string  `json:"debtId"`
	SettlementPercentage  float64 `json:"settlementPercentage"`
	SettlementMonth       int     `json:"settlementMonth"`
	MonthlyProgramPayment float64 `json:"monthlyProgramPayment"`
	MonthlyPayment        float64 `json:"monthlyPayment"`
	StartDate             string  `json:"startDate,omitempty"`
}

type BalanceTransferRequest struct {
	Debts              []Debt   `json:"debts"`
	DebtID             string   `json:"debtId"`
	NewAPR             float64  `json:"newApr"`
	TransferFeePercent float64  `json:"transferFeePercent"`
	Strategy           Strategy `json:"strategy"`
	MonthlyPayment     float64  `json:"monthlyPayment"`
	StartDate          string   `json:"startDate,omitempty"`
}

type RateChangeRequest struct {
	Debts          []Debt   `json:"debts"`
	DebtID         string   `json:"debtId"`
	NewAPR         float64  `json:"newApr"`
	Strategy       Strategy `json:"strategy"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	StartDate      string   `json:"startDate,omitempty"`
}

type TimelineRequest struct {
	Scenario PayoffScenario `json:"scenario"`
	Debts    []Debt         `json:"debts"`
}

type StrategyRecommendationRequest struct {
	Debts          []Debt  `json:"debts"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	StartDate      string  `json:"startDate,omitempty"`
}
