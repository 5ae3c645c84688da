package domain

import "time"

type DebtType string

const (
	DebtTypeCreditCard      DebtType = "credit-card"
	DebtTypePersonalLoan    DebtType = "personal-loan"
	DebtTypeStudentLoan     DebtType = "student-loan"
	DebtTypeAutoLoan        DebtType = "auto-loan"
	DebtTypeInstallmentLoan DebtType = "installment-loan"
	DebtTypeMortgage        DebtType = "mortgage"
)

type LoanProgram string

const (
	LoanProgramPrivate LoanProgram = "private"
	LoanProgramFederal LoanProgram = "federal"
)

// Debt es la deuda tal como la entrega el llamador. El motor nunca la muta;
// la validación de rangos (balance, apr, mínimos) es responsabilidad de quien
// llama.
type Debt struct {
	ID              string      `json:"id"`
	Type            DebtType    `json:"type"`
	Name            string      `json:"name"`
	Balance         float64     `json:"balance"`
	APR             float64     `json:"apr"`
	MinimumPayment  float64     `json:"minimumPayment"`
	NextPaymentDate time.Time   `json:"nextPaymentDate"`
	CustomOrder     *int        `json:"customOrder,omitempty"`
	IsDelinquent    bool        `json:"isDelinquent,omitempty"`
	LoanProgram     LoanProgram `json:"loanProgram,omitempty"`
}
