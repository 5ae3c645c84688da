package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"debt-agent/config"
	"debt-agent/domain"
	"debt-agent/repository"

	"github.com/google/uuid"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// calculateMonthlyInterest aplica la fórmula (balance × APR ÷ 100) ÷ 12.
func calculateMonthlyInterest(balance, apr float64) float64 {
	return balance * apr / 100 / 12
}

// ScenarioService corre las simulaciones de pago. Es puro y determinista:
// cada llamada trabaja sobre copias propias y dos llamadas con la misma
// entrada producen el mismo cronograma.
type ScenarioService struct {
	repo  repository.ScenarioRepository
	cache repository.CacheRepository

	maxMonths        int
	minPaymentBuffer float64
	minPaymentRate   float64
}

func NewScenarioService(
	repo repository.ScenarioRepository,
	cache repository.CacheRepository,
	params config.CalculationParams,
) *ScenarioService {
	s := &ScenarioService{
		repo:             repo,
		cache:            cache,
		maxMonths:        params.MaxScheduleMonths,
		minPaymentBuffer: params.MinPaymentBuffer,
		minPaymentRate:   params.MinPaymentRate,
	}
	if s.maxMonths <= 0 {
		s.maxMonths = MaxDebtPayoffMonths
	}
	if s.minPaymentBuffer <= 0 {
		s.minPaymentBuffer = MinPaymentInterestBuffer
	}
	if s.minPaymentRate <= 0 {
		s.minPaymentRate = MinPaymentBalanceRate
	}
	return s
}

// workingDebt es la copia interna de una deuda durante una corrida. Vive
// solo dentro de la simulación y se descarta al terminar.
type workingDebt struct {
	debt             domain.Debt
	remainingBalance float64
	settled          bool
}

// monthResult es el resultado inmutable de una deuda en un mes. Cada mes
// produce resultados nuevos; no hay campos scratch que resetear.
type monthResult struct {
	payment   float64
	principal float64
	interest  float64
	override  bool
}

// scheduleEvent inyecta un evento puntual en el mes indicado. apply puede
// mutar los balances de trabajo y devuelve las entradas del cronograma que
// reemplazan el procesamiento normal de esas deudas ese mes.
type scheduleEvent struct {
	month int
	apply func(working []*workingDebt) map[string]monthResult
}

func anyOutstanding(working []*workingDebt) bool {
	for _, wd := range working {
		if wd.remainingBalance > DebtBalanceTolerance {
			return true
		}
	}
	return false
}

// runSchedule es el paso mensual compartido por todos los escenarios:
// acumula interés, aplica mínimos, cascada del pago extra en el orden fijo
// de la estrategia y emite una entrada por deuda por mes. Los eventos
// (liquidación) son configuraciones de este mismo loop, no copias.
func (s *ScenarioService) runSchedule(
	ordered []domain.Debt,
	monthlyPayment float64,
	startDate time.Time,
	events []scheduleEvent,
) (schedule []domain.PayoffScheduleItem, totalMonths int, totalInterest, totalPaid float64) {

	working := make([]*workingDebt, len(ordered))
	for i, d := range ordered {
		working[i] = &workingDebt{debt: d, remainingBalance: d.Balance}
	}

	// Mes 0: foto inicial, cada deuda con su balance original y pago cero.
	for _, wd := range working {
		schedule = append(schedule, domain.PayoffScheduleItem{
			Month:            0,
			Date:             startDate,
			DebtID:           wd.debt.ID,
			DebtName:         wd.debt.Name,
			RemainingBalance: roundTo2Decimals(wd.remainingBalance),
		})
	}

	month := 0
	for anyOutstanding(working) && month < s.maxMonths {
		month++
		date := startDate.AddDate(0, month, 0)

		overrides := map[string]monthResult{}
		for _, ev := range events {
			if ev.month != month || ev.apply == nil {
				continue
			}
			for id, res := range ev.apply(working) {
				res.override = true
				overrides[id] = res
			}
		}

		results := make([]monthResult, len(working))
		totalMinApplied := 0.0

		// Fase 1: interés del mes y pagos mínimos.
		for i, wd := range working {
			if res, ok := overrides[wd.debt.ID]; ok {
				results[i] = res
				continue
			}
			if wd.remainingBalance <= DebtBalanceTolerance {
				wd.remainingBalance = 0
				continue
			}

			interest := calculateMonthlyInterest(wd.remainingBalance, wd.debt.APR)
			applied := math.Min(wd.debt.MinimumPayment, wd.remainingBalance+interest)

			// El interés del mes se carga completo; si el mínimo no lo
			// cubre, el faltante crece el balance (amortización negativa).
			principal := applied - interest
			if principal < 0 {
				wd.remainingBalance += -principal
				principal = 0
			} else {
				wd.remainingBalance -= principal
			}

			totalMinApplied += applied
			results[i] = monthResult{payment: applied, principal: principal, interest: interest}
		}

		// Fase 2: cascada del excedente en el orden fijo de la estrategia,
		// retirando cada deuda por completo antes de pasar a la siguiente.
		remainingExtra := math.Max(0, monthlyPayment-totalMinApplied)
		for i, wd := range working {
			if remainingExtra <= 0 {
				break
			}
			if results[i].override || wd.remainingBalance <= DebtBalanceTolerance {
				continue
			}
			extra := math.Min(remainingExtra, wd.remainingBalance)
			wd.remainingBalance -= extra
			results[i].payment += extra
			results[i].principal += extra
			remainingExtra -= extra
		}

		// Fase 3: emitir la entrada del mes de cada deuda.
		for i, wd := range working {
			if wd.remainingBalance <= DebtBalanceTolerance {
				wd.remainingBalance = 0
			}
			item := domain.PayoffScheduleItem{
				Month:            month,
				Date:             date,
				DebtID:           wd.debt.ID,
				DebtName:         wd.debt.Name,
				Payment:          roundTo2Decimals(results[i].payment),
				Principal:        roundTo2Decimals(results[i].principal),
				Interest:         roundTo2Decimals(results[i].interest),
				RemainingBalance: roundTo2Decimals(math.Max(0, wd.remainingBalance)),
			}
			totalInterest += item.Interest
			totalPaid += item.Payment
			schedule = append(schedule, item)
		}
	}

	if anyOutstanding(working) {
		log.Printf("Warning: debt payoff simulation reached maximum months limit (%d) with balances outstanding", s.maxMonths)
	}

	return schedule, month, roundTo2Decimals(totalInterest), roundTo2Decimals(totalPaid)
}

var strategyScenarioNames = map[domain.Strategy]string{
	domain.StrategySnowball:  "Snowball Strategy",
	domain.StrategyAvalanche: "Avalanche Strategy",
	domain.StrategyCustom:    "Custom Strategy",
}

// CalculatePayoffScenario simula el pago de las deudas mes a mes con la
// estrategia y el presupuesto mensual indicados.
func (s *ScenarioService) CalculatePayoffScenario(
	debts []domain.Debt,
	strategy domain.Strategy,
	monthlyPayment float64,
	startDate time.Time,
) (domain.PayoffScenario, error) {

	if len(debts) == 0 {
		return domain.PayoffScenario{}, errors.New("no se proporcionaron deudas")
	}
	if len(debts) > MaxDebtsPerRequest {
		return domain.PayoffScenario{}, fmt.Errorf("número de deudas excede el máximo de %d", MaxDebtsPerRequest)
	}
	if monthlyPayment < 0 {
		return domain.PayoffScenario{}, errors.New("pago mensual inválido")
	}
	if !IsPayoffStrategy(strategy) {
		return domain.PayoffScenario{}, errors.New("estrategia inválida")
	}

	key := s.cacheKey("payoff", struct {
		Debts          []domain.Debt
		Strategy       domain.Strategy
		MonthlyPayment float64
		StartDate      time.Time
	}{debts, strategy, monthlyPayment, startDate})

	if cached, ok := s.fromCache(key); ok {
		return cached, nil
	}

	ordered := OrderDebtsByStrategy(debts, strategy)
	schedule, months, totalInterest, totalPaid := s.runSchedule(ordered, monthlyPayment, startDate, nil)

	name := strategyScenarioNames[strategy]
	if name == "" {
		name = "Payoff Scenario"
	}

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

	s.store(key, scenario)
	return scenario, nil
}

// ValidateMinimumPayment indica si el pago mínimo cubre al menos el interés
// mensual del balance.
func (s *ScenarioService) ValidateMinimumPayment(balance, apr, minimumPayment float64) bool {
	return minimumPayment >= calculateMonthlyInterest(balance, apr)
}

// SuggestMinimumPayment sugiere un mínimo que amortiza:
// max(interés mensual + buffer, tasa × balance).
func (s *ScenarioService) SuggestMinimumPayment(balance, apr float64) float64 {
	monthlyInterest := calculateMonthlyInterest(balance, apr)
	return roundTo2Decimals(math.Max(monthlyInterest+s.minPaymentBuffer, s.minPaymentRate*balance))
}

// cacheKey deriva una llave estable del JSON canónico de la entrada. El
// motor es determinista, así que cachear por entrada es seguro.
func (s *ScenarioService) cacheKey(kind string, payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return "scenario:" + kind + ":" + hex.EncodeToString(sum[:])
}

func (s *ScenarioService) fromCache(key string) (domain.PayoffScenario, bool) {
	if key == "" || s.cache == nil {
		return domain.PayoffScenario{}, false
	}
	raw, ok := s.cache.Get(key)
	if !ok {
		return domain.PayoffScenario{}, false
	}
	var scenario domain.PayoffScenario
	if err := json.Unmarshal([]byte(raw), &scenario); err != nil {
		return domain.PayoffScenario{}, false
	}
	return scenario, true
}

// store guarda el escenario calculado; ninguna de las dos escrituras es
// crítica si falla.
func (s *ScenarioService) store(key string, scenario domain.PayoffScenario) {
	if s.repo != nil {
		if err := s.repo.Save(scenario); err != nil {
			log.Printf("Warning: failed to save scenario %s: %v", scenario.ID, err)
		}
	}
	if key == "" || s.cache == nil {
		return
	}
	data, err := json.Marshal(scenario)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, string(data)); err != nil {
		log.Printf("Warning: failed to cache scenario %s: %v", scenario.ID, err)
	}
}
