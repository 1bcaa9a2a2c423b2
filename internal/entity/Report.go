package entity

// QuestionStats aggregates the answers of one question.
// Answers that were taken out are excluded from AnswerCount and Average.
type QuestionStats struct {
	QuestionID    int64         `json:"question_id" db:"question_id"`
	Text          string        `json:"text" db:"text"`
	Type          QuestionType  `json:"type" db:"type"`
	Position      int           `json:"position" db:"position"`
	AnswerCount   int           `json:"answer_count" db:"answer_count"`
	Average       *float64      `json:"average,omitempty" db:"average"`
	TakenOutCount int           `json:"taken_out_count" db:"taken_out_count"`
	PendingCount  int           `json:"pending_count" db:"pending_count"`
	Distribution  []OptionCount `json:"distribution,omitempty" db:"-"`
}

type OptionCount struct {
	QuestionID int64  `json:"-" db:"question_id"`
	Value      string `json:"value" db:"value"`
	Count      int    `json:"count" db:"count"`
}

type SurveySummary struct {
	Survey        Survey          `json:"survey"`
	ResponseCount int             `json:"response_count"`
	Questions     []QuestionStats `json:"questions"`
}

// ExportRow is one answer line of a survey export.
type ExportRow struct {
	ResponseID      int64         `db:"response_id"`
	SubmittedAt     string        `db:"submitted_at"`
	RespondentEmail string        `db:"respondent_email"`
	RespondentName  string        `db:"respondent_name"`
	ApplicationName string        `db:"application_name"`
	QuestionText    string        `db:"question_text"`
	Value           string        `db:"value"`
	TakeoutStatus   TakeoutStatus `db:"takeout_status"`
}
