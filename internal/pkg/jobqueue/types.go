package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	// JobTypeDueDateBackfill recomputes missing next-due dates on historical
	// inspections for one tenant.
	JobTypeDueDateBackfill JobType = "due_date_backfill"
	// JobTypeExportArchive generates an export document and stores it in S3.
	JobTypeExportArchive JobType = "export_archive"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// BackfillJobPayload contains the payload for due-date backfill jobs
type BackfillJobPayload struct {
	TenantID uint `json:"tenant_id"`
}

// ToMap converts the payload to a map for storage
func (p BackfillJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id": p.TenantID,
	}
}

// BackfillJobPayloadFromMap creates a payload from a map
func BackfillJobPayloadFromMap(data map[string]interface{}) (*BackfillJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload BackfillJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// ExportArchiveJobPayload contains the payload for export archive jobs
type ExportArchiveJobPayload struct {
	TenantID uint   `json:"tenant_id"`
	Entity   string `json:"entity"` // buildings | doors
}

// ToMap converts the payload to a map for storage
func (p ExportArchiveJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id": p.TenantID,
		"entity":    p.Entity,
	}
}

// ExportArchiveJobPayloadFromMap creates a payload from a map
func ExportArchiveJobPayloadFromMap(data map[string]interface{}) (*ExportArchiveJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload ExportArchiveJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errorMsg
	j.RetryCount++
	j.UpdatedAt = time.Now()
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
