package jobqueue

import (
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/complymate/doorguard/internal/pkg/env"
)

// Manager manages the global job queue
type Manager struct {
	queue   *Queue
	mu      sync.Mutex
	running bool
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager() *Manager {
	managerOnce.Do(func() {
		workers := 2
		if v, err := strconv.Atoi(env.GetEnv("JOB_WORKERS", "2")); err == nil && v > 0 {
			workers = v
		}
		globalManager = &Manager{
			queue: NewQueue(workers),
		}
	})
	return globalManager
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue workers
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue")
	m.queue.Start()
}

// Stop stops the job queue workers
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}
	m.running = false
	m.queue.Stop()
	log.Info("[JobQueue Manager] Stopped")
}

// EnqueueBackfill schedules a due-date backfill run for a tenant
func (m *Manager) EnqueueBackfill(tenantID uint) (*Job, error) {
	payload := BackfillJobPayload{TenantID: tenantID}
	return m.queue.EnqueueJob(JobTypeDueDateBackfill, payload.ToMap())
}

// EnqueueExportArchive schedules an export archive run for a tenant
func (m *Manager) EnqueueExportArchive(tenantID uint, entity string) (*Job, error) {
	payload := ExportArchiveJobPayload{TenantID: tenantID, Entity: entity}
	return m.queue.EnqueueJob(JobTypeExportArchive, payload.ToMap())
}
