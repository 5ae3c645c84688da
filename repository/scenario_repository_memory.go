package repository

import (
	"sync"

	"debt-agent/domain"
)

// ScenarioRepositoryMemory is an in-memory implementation of
// ScenarioRepository.
type ScenarioRepositoryMemory struct {
	mu   sync.Mutex
	data []domain.PayoffScenario
}

// NewScenarioRepositoryMemory creates a new in-memory scenario repository.
func NewScenarioRepositoryMemory() *ScenarioRepositoryMemory {
	return &ScenarioRepositoryMemory{
		data: []domain.PayoffScenario{},
	}
}

// Save stores the scenario in memory.
func (r *ScenarioRepositoryMemory) Save(scenario domain.PayoffScenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, scenario)
	return nil
}

// Count devuelve la cantidad de escenarios guardados.
func (r *ScenarioRepositoryMemory) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.data)
}
