package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SurveyStatus string

const (
	SurveyStatusDraft    SurveyStatus = "draft"
	SurveyStatusActive   SurveyStatus = "active"
	SurveyStatusClosed   SurveyStatus = "closed"
	SurveyStatusArchived SurveyStatus = "archived"
)

var surveyTransitions = map[SurveyStatus][]SurveyStatus{
	SurveyStatusDraft:  {SurveyStatusActive},
	SurveyStatusActive: {SurveyStatusClosed},
	SurveyStatusClosed: {SurveyStatusArchived, SurveyStatusActive},
}

func (s SurveyStatus) Valid() bool {
	switch s {
	case SurveyStatusDraft, SurveyStatusActive, SurveyStatusClosed, SurveyStatusArchived:
		return true
	}
	return false
}

func (s SurveyStatus) CanTransitionTo(to SurveyStatus) bool {
	for _, next := range surveyTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// SurveyConfig is persisted as JSONB next to the survey row.
type SurveyConfig struct {
	AllowAnonymous bool     `json:"allow_anonymous"`
	AllowMultiple  bool     `json:"allow_multiple"`
	TargetEmails   []string `json:"target_emails,omitempty"`
	HeroImage      string   `json:"hero_image,omitempty"`
}

func (c SurveyConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *SurveyConfig) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = SurveyConfig{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("survey config: unsupported type %T", src)
	}
}

type Survey struct {
	ID          int64        `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	StartDate   time.Time    `json:"start_date" db:"start_date"`
	EndDate     time.Time    `json:"end_date" db:"end_date"`
	Status      SurveyStatus `json:"status" db:"status"`
	Config      SurveyConfig `json:"config" db:"config"`
	CreatedBy   int64        `json:"created_by" db:"created_by"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
	Questions   []Question   `json:"questions,omitempty" db:"-"`
}

// AcceptsResponses reports whether respondents may submit at the given moment.
func (s Survey) AcceptsResponses(now time.Time) bool {
	return s.Status == SurveyStatusActive && !now.Before(s.StartDate) && !now.After(s.EndDate)
}
