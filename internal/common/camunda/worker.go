// internal/common/camunda/worker.go
package camunda

import (
	"fmt"
	"sync"

	"niche-workers/internal/common/logger"
)

// Worker is a job handler that can subscribe itself to the broker.
type Worker interface {
	Register() error
	Close()
	GetTaskType() string
	IsEnabled() bool
}

// Manager owns the set of workers started by a process.
type Manager struct {
	mu      sync.Mutex
	logger  logger.Logger
	workers []Worker
	started []Worker
}

func NewManager(log logger.Logger) *Manager {
	return &Manager{logger: log}
}

// Add queues w for Start. Duplicate task types are rejected.
func (m *Manager) Add(w Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.workers {
		if existing.GetTaskType() == w.GetTaskType() {
			return fmt.Errorf("worker for task type %s already added", w.GetTaskType())
		}
	}
	m.workers = append(m.workers, w)
	return nil
}

// Start registers every enabled worker. On failure the workers already
// registered are closed again.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.workers {
		if !w.IsEnabled() {
			m.logger.Info("Worker disabled, skipping", map[string]interface{}{
				"taskType": w.GetTaskType(),
			})
			continue
		}
		if err := w.Register(); err != nil {
			m.closeStarted()
			return fmt.Errorf("register %s: %w", w.GetTaskType(), err)
		}
		m.started = append(m.started, w)
	}

	m.logger.Info("Workers started", map[string]interface{}{
		"registered": len(m.started),
		"total":      len(m.workers),
	})
	return nil
}

// Stop closes the started workers in reverse order.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeStarted()
}

// TaskTypes lists the task types currently subscribed.
func (m *Manager) TaskTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, 0, len(m.started))
	for _, w := range m.started {
		types = append(types, w.GetTaskType())
	}
	return types
}

func (m *Manager) closeStarted() {
	for i := len(m.started) - 1; i >= 0; i-- {
		w := m.started[i]
		w.Close()
		m.logger.Info("Worker stopped", map[string]interface{}{
			"taskType": w.GetTaskType(),
		})
	}
	m.started = nil
}
