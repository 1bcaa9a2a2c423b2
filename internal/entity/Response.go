package entity

import "time"

type TakeoutStatus string

const (
	TakeoutActive   TakeoutStatus = "Active"
	TakeoutProposed TakeoutStatus = "ProposedTakeout"
	TakeoutTakenOut TakeoutStatus = "TakenOut"
	TakeoutRejected TakeoutStatus = "Rejected"
)

var takeoutTransitions = map[TakeoutStatus][]TakeoutStatus{
	TakeoutActive:   {TakeoutProposed},
	TakeoutRejected: {TakeoutProposed},
	TakeoutProposed: {TakeoutTakenOut, TakeoutRejected, TakeoutActive},
}

func (s TakeoutStatus) CanTransitionTo(to TakeoutStatus) bool {
	for _, next := range takeoutTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Response struct {
	ID              int64              `json:"id" db:"id"`
	SurveyID        int64              `json:"survey_id" db:"survey_id"`
	RespondentEmail string             `json:"respondent_email" db:"respondent_email"`
	RespondentName  string             `json:"respondent_name" db:"respondent_name"`
	ApplicationID   *int64             `json:"application_id,omitempty" db:"application_id"`
	SubmittedAt     time.Time          `json:"submitted_at" db:"submitted_at"`
	Answers         []QuestionResponse `json:"answers,omitempty" db:"-"`
}

type QuestionResponse struct {
	ID            int64         `json:"id" db:"id"`
	ResponseID    int64         `json:"response_id" db:"response_id"`
	QuestionID    int64         `json:"question_id" db:"question_id"`
	Value         string        `json:"value" db:"value"`
	NumericValue  *float64      `json:"numeric_value,omitempty" db:"numeric_value"`
	TakeoutStatus TakeoutStatus `json:"takeout_status" db:"takeout_status"`
	TakeoutReason string        `json:"takeout_reason,omitempty" db:"takeout_reason"`
	ProposedBy    *int64        `json:"proposed_by,omitempty" db:"proposed_by"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}
