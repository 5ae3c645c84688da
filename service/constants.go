package service

const (
	MaxDebtsPerRequest   = 50   // máximo de deudas por simulación
	MaxTermMonths        = 600  // 50 años
	MaxDebtPayoffMonths  = 600  // tope de seguridad del cronograma
	DebtBalanceTolerance = 0.01 // tolerancia para considerar deuda pagada

	// Parámetros por defecto de la sugerencia de pago mínimo:
	// max(interés mensual + buffer, tasa × balance)
	MinPaymentInterestBuffer = 25.0
	MinPaymentBalanceRate    = 0.02
)
