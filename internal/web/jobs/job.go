package jobs

import (
	"time"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// JobStatus represents the current state of a scan job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Job represents an async scan job. Report is nil until the job
// completes successfully.
type Job struct {
	ID          string         `json:"id"`
	ScanType    types.ScanType `json:"scanType"`
	ClientID    string         `json:"clientId,omitempty"`
	Status      JobStatus      `json:"status"`
	Report      *types.Report  `json:"report,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	StartedAt   time.Time      `json:"startedAt,omitempty"`
	CompletedAt time.Time      `json:"completedAt,omitempty"`
}

// IssueCount returns the number of issues in the completed report,
// or zero while the job is still in flight.
func (j *Job) IssueCount() int {
	if j.Report == nil {
		return 0
	}
	return j.Report.Summary.IssueCount
}
