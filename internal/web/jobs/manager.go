// Package jobs tracks asynchronous scan jobs for the web server.
// Jobs live in memory only; restarting the server forgets them, but
// their reports remain on disk via the pipeline's persistence.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// RunFunc executes one scan end to end and returns its report. The
// production implementation is pipeline.Pipeline.Run.
type RunFunc func(ctx context.Context, scanType types.ScanType) (*types.Report, error)

// Manager manages scan job lifecycle: create, execute, track.
type Manager struct {
	mu    sync.RWMutex
	jobs  map[string]*Job
	run   RunFunc
	newID func() string
	now   func() time.Time

	// jobTimeout bounds a single scan's execution.
	jobTimeout time.Duration
}

// NewManager creates a job manager that executes scans via run.
func NewManager(run RunFunc, newID func() string, jobTimeout time.Duration) *Manager {
	return &Manager{
		jobs:       make(map[string]*Job),
		run:        run,
		newID:      newID,
		now:        time.Now,
		jobTimeout: jobTimeout,
	}
}

// Create creates a new pending scan job.
func (m *Manager) Create(scanType types.ScanType, clientID string) *Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &Job{
		ID:        m.newID(),
		ScanType:  scanType,
		ClientID:  clientID,
		Status:    StatusPending,
		CreatedAt: m.now(),
	}
	m.jobs[job.ID] = job
	return job
}

// Start launches the scan job in a background goroutine.
func (m *Manager) Start(jobID string) error {
	m.mu.Lock()
	job, ok := m.jobs[jobID]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("job %q not found", jobID)
	}
	job.Status = StatusRunning
	job.StartedAt = m.now()
	m.mu.Unlock()

	go m.execute(job)
	return nil
}

func (m *Manager) execute(job *Job) {
	defer func() {
		if r := recover(); r != nil {
			m.mu.Lock()
			job.Status = StatusFailed
			job.Error = fmt.Sprintf("panic: %v", r)
			job.CompletedAt = m.now()
			m.mu.Unlock()
		}
	}()

	ctx := context.Background()
	if m.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.jobTimeout)
		defer cancel()
	}

	rep, err := m.run(ctx, job.ScanType)

	m.mu.Lock()
	defer m.mu.Unlock()
	job.CompletedAt = m.now()
	if err != nil {
		job.Status = StatusFailed
		job.Error = err.Error()
		return
	}
	job.Status = StatusCompleted
	job.Report = rep
}

// Get returns a snapshot of a job by ID. The executor goroutine
// mutates the stored job under the mutex, so callers must never hold
// the live struct.
func (m *Manager) Get(jobID string) (*Job, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %q not found", jobID)
	}
	snap := *job
	return &snap, nil
}

// List returns snapshots of all jobs sorted by CreatedAt descending.
func (m *Manager) List() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		snap := *j
		result = append(result, &snap)
	}
	sort.Slice(result, func(i, k int) bool {
		return result[i].CreatedAt.After(result[k].CreatedAt)
	})
	return result
}

// Delete removes a job from the manager. A running job keeps running
// but its result is discarded.
func (m *Manager) Delete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[jobID]; !ok {
		return fmt.Errorf("job %q not found", jobID)
	}
	delete(m.jobs, jobID)
	return nil
}
