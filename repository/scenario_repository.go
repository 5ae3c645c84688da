package repository

import "debt-agent/domain"

// ScenarioRepository guarda los escenarios calculados. El guardado es de
// mejor esfuerzo: un fallo no debe abortar la simulación.
type ScenarioRepository interface {
	Save(scenario domain.PayoffScenario) error
}
