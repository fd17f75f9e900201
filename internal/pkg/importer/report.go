package importer

import "time"

// EntityKind selects which record type an import file contains.
type EntityKind string

const (
	KindBuildings EntityKind = "buildings"
	KindDoors     EntityKind = "doors"
)

// RowStatus is the terminal state of one input row.
type RowStatus string

const (
	StatusCreated  RowStatus = "created"
	StatusRejected RowStatus = "rejected"
)

// Row-level rejection codes produced by the pipeline itself. Field-level
// validation codes (MISSING_FIELD etc.) come from the schema package.
const (
	ReasonMalformedRow     = "MALFORMED_ROW"
	ReasonDuplicateInBatch = "DUPLICATE_IN_BATCH"
	ReasonUnknownReference = "UNKNOWN_REFERENCE"
	ReasonQuotaExceeded    = "QUOTA_EXCEEDED"
	ReasonPersistFailed    = "PERSIST_FAILED"
)

// Outcome records what happened to one input row. RowIndex is zero-based over
// the data rows (the header is not counted).
type Outcome struct {
	RowIndex   int       `json:"row_index"`
	Status     RowStatus `json:"status"`
	ReasonCode string    `json:"reason_code,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Report is the result of one import run. Outcomes are ordered exactly like
// the input rows so callers can reconcile against the original file. It is
// returned to the caller and never stored.
type Report struct {
	RunID         string        `json:"run_id"`
	Entity        EntityKind    `json:"entity"`
	TotalRows     int           `json:"total_rows"`
	CreatedCount  int           `json:"created_count"`
	RejectedCount int           `json:"rejected_count"`
	BatchError    string        `json:"batch_error,omitempty"`
	Outcomes      []Outcome     `json:"outcomes"`
	Duration      time.Duration `json:"-"`
}

func (r *Report) reject(idx int, code, message string) {
	r.Outcomes[idx] = Outcome{RowIndex: idx, Status: StatusRejected, ReasonCode: code, Message: message}
}

func (r *Report) created(idx int) {
	r.Outcomes[idx] = Outcome{RowIndex: idx, Status: StatusCreated}
}

func (r *Report) tally() {
	r.CreatedCount = 0
	r.RejectedCount = 0
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated:
			r.CreatedCount++
		case StatusRejected:
			r.RejectedCount++
		}
	}
}
