package entity

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	QuestionRating         QuestionType = "rating"
	QuestionText           QuestionType = "text"
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionNPS            QuestionType = "nps"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionRating, QuestionText, QuestionSingleChoice, QuestionMultipleChoice, QuestionNPS:
		return true
	}
	return false
}

func (t QuestionType) IsChoice() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice
}

func (t QuestionType) IsNumeric() bool {
	return t == QuestionRating || t == QuestionNPS
}

// Question options are a JSON array of {"value": "...", "label": "..."} objects.
type Question struct {
	ID         int64           `json:"id" db:"id"`
	SurveyID   int64           `json:"survey_id" db:"survey_id"`
	Text       string          `json:"text" db:"text"`
	Type       QuestionType    `json:"type" db:"type"`
	Options    json.RawMessage `json:"options" db:"options"`
	IsRequired bool            `json:"is_required" db:"is_required"`
	Position   int             `json:"position" db:"position"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
