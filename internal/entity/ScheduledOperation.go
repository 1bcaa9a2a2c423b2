package entity

import "time"

type OperationType string

const (
	OperationBlast    OperationType = "blast"
	OperationReminder OperationType = "reminder"
)

func (t OperationType) Valid() bool {
	return t == OperationBlast || t == OperationReminder
}

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Next returns the execution time following t, or false for one-shot operations.
func (f Frequency) Next(t time.Time) (time.Time, bool) {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7), true
	case FrequencyMonthly:
		return t.AddDate(0, 1, 0), true
	}
	return time.Time{}, false
}

type OperationStatus string

const (
	OperationScheduled OperationStatus = "scheduled"
	OperationRunning   OperationStatus = "running"
	OperationCompleted OperationStatus = "completed"
	OperationFailed    OperationStatus = "failed"
	OperationCancelled OperationStatus = "cancelled"
)

type ScheduledOperation struct {
	ID              int64           `json:"id" db:"id"`
	SurveyID        int64           `json:"survey_id" db:"survey_id"`
	Type            OperationType   `json:"type" db:"type"`
	Frequency       Frequency       `json:"frequency" db:"frequency"`
	Subject         string          `json:"subject" db:"subject"`
	TemplateBody    string          `json:"template_body" db:"template_body"`
	NextExecutionAt time.Time       `json:"next_execution_at" db:"next_execution_at"`
	LastExecutedAt  *time.Time      `json:"last_executed_at,omitempty" db:"last_executed_at"`
	StartedAt       *time.Time      `json:"started_at,omitempty" db:"started_at"`
	Status          OperationStatus `json:"status" db:"status"`
	RetryCount      int             `json:"retry_count" db:"retry_count"`
	LastError       string          `json:"last_error,omitempty" db:"last_error"`
	CreatedBy       int64           `json:"created_by" db:"created_by"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

type EmailLog struct {
	ID          int64       `json:"id" db:"id"`
	OperationID *int64      `json:"operation_id,omitempty" db:"operation_id"`
	Recipient   string      `json:"recipient" db:"recipient"`
	Subject     string      `json:"subject" db:"subject"`
	Status      EmailStatus `json:"status" db:"status"`
	Error       string      `json:"error,omitempty" db:"error"`
	SentAt      time.Time   `json:"sent_at" db:"sent_at"`
}
