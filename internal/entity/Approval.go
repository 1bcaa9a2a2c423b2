package entity

import "time"

type ApprovalHistory struct {
	ID                 int64         `json:"id" db:"id"`
	QuestionResponseID int64         `json:"question_response_id" db:"question_response_id"`
	FromStatus         TakeoutStatus `json:"from_status" db:"from_status"`
	ToStatus           TakeoutStatus `json:"to_status" db:"to_status"`
	ActorID            int64         `json:"actor_id" db:"actor_id"`
	Reason             string        `json:"reason,omitempty" db:"reason"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
}

// TakeoutTransition moves one answer between takeout states.
// It applies only while the answer is still in From.
type TakeoutTransition struct {
	QuestionResponseID int64
	From               TakeoutStatus
	To                 TakeoutStatus
	ActorID            int64
	Reason             string
}

// PendingTakeout is a proposed takeout together with the context a reviewer needs.
type PendingTakeout struct {
	QuestionResponseID int64     `json:"question_response_id" db:"question_response_id"`
	SurveyID           int64     `json:"survey_id" db:"survey_id"`
	SurveyTitle        string    `json:"survey_title" db:"survey_title"`
	QuestionText       string    `json:"question_text" db:"question_text"`
	RespondentEmail    string    `json:"respondent_email" db:"respondent_email"`
	Value              string    `json:"value" db:"value"`
	Reason             string    `json:"reason" db:"takeout_reason"`
	ProposedBy         *int64    `json:"proposed_by,omitempty" db:"proposed_by"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// TakeoutContact carries what a decision notification is built from.
type TakeoutContact struct {
	ProposerEmail string `db:"proposer_email"`
	ProposerName  string `db:"proposer_name"`
	SurveyTitle   string `db:"survey_title"`
	QuestionText  string `db:"question_text"`
}
