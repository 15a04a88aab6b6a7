package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("job-%d", n)
	}
}

func okRun(rep *types.Report) RunFunc {
	return func(_ context.Context, scanType types.ScanType) (*types.Report, error) {
		rep.ScanType = scanType
		return rep, nil
	}
}

func newTestManager(run RunFunc) *Manager {
	return NewManager(run, sequentialIDs(), time.Minute)
}

// waitForDone polls Get until the job reaches a terminal status and
// returns the final snapshot.
func waitForDone(t *testing.T, m *Manager, jobID string) *Job {
	t.Helper()
	var last *Job
	require.Eventually(t, func() bool {
		j, err := m.Get(jobID)
		if err != nil {
			return false
		}
		last = j
		return j.Status == StatusCompleted || j.Status == StatusFailed
	}, 5*time.Second, 10*time.Millisecond)
	return last
}

func TestCreate_ReturnsPendingJob(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))

	job := m.Create(types.ScanSystem, "client-1")

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, types.ScanSystem, job.ScanType)
	assert.Equal(t, "client-1", job.ClientID)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Nil(t, job.Report)
}

func TestStartAndComplete(t *testing.T) {
	rep := &types.Report{
		ReportID: "rep-1",
		Summary:  types.ReportSummary{IssueCount: 3, RiskLevel: types.RiskMedium},
	}
	m := newTestManager(okRun(rep))

	job := m.Create(types.ScanQuick, "")
	require.NoError(t, m.Start(job.ID))
	done := waitForDone(t, m, job.ID)

	assert.Equal(t, StatusCompleted, done.Status)
	require.NotNil(t, done.Report)
	assert.Equal(t, "rep-1", done.Report.ReportID)
	assert.Equal(t, types.ScanQuick, done.Report.ScanType)
	assert.Equal(t, 3, done.IssueCount())
	assert.False(t, done.CompletedAt.IsZero())
}

func TestStart_RunErrorMarksFailed(t *testing.T) {
	m := newTestManager(func(context.Context, types.ScanType) (*types.Report, error) {
		return nil, errors.New("collectors unavailable")
	})

	job := m.Create(types.ScanFull, "")
	require.NoError(t, m.Start(job.ID))
	done := waitForDone(t, m, job.ID)

	assert.Equal(t, StatusFailed, done.Status)
	assert.Contains(t, done.Error, "collectors unavailable")
	assert.Nil(t, done.Report)
	assert.Zero(t, done.IssueCount())
}

func TestStart_PanicMarksFailed(t *testing.T) {
	m := newTestManager(func(context.Context, types.ScanType) (*types.Report, error) {
		panic("boom")
	})

	job := m.Create(types.ScanNetwork, "")
	require.NoError(t, m.Start(job.ID))
	done := waitForDone(t, m, job.ID)

	assert.Equal(t, StatusFailed, done.Status)
	assert.Contains(t, done.Error, "panic")
	assert.Contains(t, done.Error, "boom")
}

func TestStart_InvalidJobID(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	err := m.Start("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_ReturnsJob(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	job := m.Create(types.ScanSystem, "")

	got, err := m.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
}

func TestGet_NotFound(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	_, err := m.Get("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGet_ReturnsSnapshotNotLiveJob(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	job := m.Create(types.ScanSystem, "")

	snap, err := m.Get(job.ID)
	require.NoError(t, err)
	snap.Status = StatusFailed
	snap.Error = "mutated by caller"

	again, err := m.Get(job.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, again.Status)
	assert.Empty(t, again.Error)
}

func TestGet_SafeToReadWhileJobRuns(t *testing.T) {
	m := newTestManager(func(context.Context, types.ScanType) (*types.Report, error) {
		time.Sleep(20 * time.Millisecond)
		return &types.Report{ReportID: "rep-1"}, nil
	})

	job := m.Create(types.ScanSystem, "")
	require.NoError(t, m.Start(job.ID))

	// Encode snapshots while the executor is still writing the stored
	// job; the race detector flags this if Get or List ever aliases it.
	require.Eventually(t, func() bool {
		snap, err := m.Get(job.ID)
		if err != nil {
			return false
		}
		if _, err := json.Marshal(snap); err != nil {
			return false
		}
		for _, j := range m.List() {
			if _, err := json.Marshal(j); err != nil {
				return false
			}
		}
		return snap.Status == StatusCompleted
	}, 5*time.Second, time.Millisecond)
}

func TestList_SortedByCreatedAtDesc(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))

	base := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	j1 := m.Create(types.ScanQuick, "")
	j2 := m.Create(types.ScanSystem, "")

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, j2.ID, list[0].ID) // most recent first
	assert.Equal(t, j1.ID, list[1].ID)
}

func TestDelete_RemovesJob(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	job := m.Create(types.ScanSystem, "")

	require.NoError(t, m.Delete(job.ID))

	_, err := m.Get(job.ID)
	assert.Error(t, err)
}

func TestDelete_NotFound(t *testing.T) {
	m := newTestManager(okRun(&types.Report{}))
	err := m.Delete("nonexistent")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
