package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/tidwall/gjson"
)

var (
	ErrInvalidDateRange  = apperr.Validation("end_date must be after start_date")
	ErrSurveyNotEditable = apperr.Conflict("only draft or archived surveys can be deleted")
	ErrQuestionAnswered  = apperr.Conflict("question of an active survey already has answers")
	ErrSurveyNotOpen     = apperr.NotFound("survey is not open for responses")
)

type SurveyStorage interface {
	SaveSurvey(ctx context.Context, survey *entity.Survey) (int64, error)
	GetSurveyByID(ctx context.Context, id int64) (entity.Survey, error)
	GetSurveys(ctx context.Context, status entity.SurveyStatus, page entity.Page) ([]entity.Survey, error)
	UpdateSurvey(ctx context.Context, survey *entity.Survey) error
	UpdateSurveyStatus(ctx context.Context, id int64, from, to entity.SurveyStatus) error
	DeleteSurvey(ctx context.Context, id int64) error
}

type QuestionStorage interface {
	SaveQuestion(ctx context.Context, q *entity.Question) (int64, error)
	GetQuestionByID(ctx context.Context, id int64) (entity.Question, error)
	GetQuestionsBySurveyID(ctx context.Context, surveyID int64) ([]entity.Question, error)
	UpdateQuestion(ctx context.Context, q *entity.Question) error
	DeleteQuestion(ctx context.Context, id, surveyID int64) error
	ReorderQuestions(ctx context.Context, surveyID int64, ids []int64) error
	CountAnswers(ctx context.Context, questionID int64) (int, error)
}

type Surveys struct {
	log             *slog.Logger
	surveyStorage   SurveyStorage
	questionStorage QuestionStorage
	audit           *Audit
	now             func() time.Time
}

type SurveyInput struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Config      entity.SurveyConfig
}

type QuestionInput struct {
	Text       string
	Type       entity.QuestionType
	Options    json.RawMessage
	IsRequired bool
}

func NewSurveys(log *slog.Logger, surveyStorage SurveyStorage, questionStorage QuestionStorage, audit *Audit) *Surveys {
	return &Surveys{
		log:             log,
		surveyStorage:   surveyStorage,
		questionStorage: questionStorage,
		audit:           audit,
		now:             time.Now,
	}
}

func validateSurvey(in *SurveyInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperr.Validation("title is required")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return apperr.Validation("start_date and end_date are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return ErrInvalidDateRange
	}

	emails := make([]string, 0, len(in.Config.TargetEmails))
	for _, e := range in.Config.TargetEmails {
		e = normalizeEmail(e)
		if e == "" {
			continue
		}
		if !validEmail(e) {
			return apperr.Validation(fmt.Sprintf("invalid target email %q", e))
		}
		if !slices.Contains(emails, e) {
			emails = append(emails, e)
		}
	}
	in.Config.TargetEmails = emails
	return nil
}

func (s *Surveys) CreateSurvey(ctx context.Context, actor entity.Actor, in SurveyInput) (int64, error) {
	const op = "services.Surveys.CreateSurvey"

	if err := validateSurvey(&in); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	survey := &entity.Survey{
		Title:       in.Title,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      entity.SurveyStatusDraft,
		Config:      in.Config,
		CreatedBy:   actor.ID,
	}

	id, err := s.surveyStorage.SaveSurvey(ctx, survey)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "surveys.create", "surveys", id, entity.LogDetails{"title": in.Title})
	s.log.Info("survey created", slog.String("op", op), slog.Int64("survey_id", id))
	return id, nil
}

func (s *Surveys) UpdateSurvey(ctx context.Context, actor entity.Actor, id int64, in SurveyInput) (entity.Survey, error) {
	const op = "services.Surveys.UpdateSurvey"

	if err := validateSurvey(&in); err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}

	survey, err := s.surveyStorage.GetSurveyByID(ctx, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}

	survey.Title = in.Title
	survey.Description = in.Description
	survey.StartDate = in.StartDate
	survey.EndDate = in.EndDate
	survey.Config = in.Config

	if err := s.surveyStorage.UpdateSurvey(ctx, &survey); err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "surveys.update", "surveys", id, nil)
	return survey, nil
}

// GetSurvey returns the survey together with its ordered questions.
func (s *Surveys) GetSurvey(ctx context.Context, id int64) (entity.Survey, error) {
	const op = "services.Surveys.GetSurvey"

	survey, err := s.surveyStorage.GetSurveyByID(ctx, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}

	questions, err := s.questionStorage.GetQuestionsBySurveyID(ctx, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}
	survey.Questions = questions

	return survey, nil
}

// GetPublicSurvey returns a survey for respondents. Only surveys accepting responses are visible
// and the recipient list is not disclosed.
func (s *Surveys) GetPublicSurvey(ctx context.Context, id int64) (entity.Survey, error) {
	const op = "services.Surveys.GetPublicSurvey"

	survey, err := s.GetSurvey(ctx, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}
	if !survey.AcceptsResponses(s.now()) {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, ErrSurveyNotOpen)
	}
	survey.Config.TargetEmails = nil

	return survey, nil
}

func (s *Surveys) ListSurveys(ctx context.Context, status entity.SurveyStatus, page entity.Page) ([]entity.Survey, error) {
	const op = "services.Surveys.ListSurveys"

	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, apperr.Validation("unknown survey status"))
	}

	surveys, err := s.surveyStorage.GetSurveys(ctx, status, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return surveys, nil
}

func (s *Surveys) DeleteSurvey(ctx context.Context, actor entity.Actor, id int64) error {
	const op = "services.Surveys.DeleteSurvey"

	survey, err := s.surveyStorage.GetSurveyByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if survey.Status != entity.SurveyStatusDraft && survey.Status != entity.SurveyStatusArchived {
		return fmt.Errorf("%s: %w", op, ErrSurveyNotEditable)
	}

	if err := s.surveyStorage.DeleteSurvey(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "surveys.delete", "surveys", id, nil)
	return nil
}

func (s *Surveys) SetStatus(ctx context.Context, actor entity.Actor, id int64, to entity.SurveyStatus) (entity.Survey, error) {
	const op = "services.Surveys.SetStatus"

	if !to.Valid() {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, apperr.Validation("unknown survey status"))
	}

	survey, err := s.surveyStorage.GetSurveyByID(ctx, id)
	if err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}
	if !survey.Status.CanTransitionTo(to) {
		return entity.Survey{}, fmt.Errorf("%s: %w", op,
			apperr.Conflict(fmt.Sprintf("cannot change survey status from %s to %s", survey.Status, to)))
	}

	if err := s.surveyStorage.UpdateSurveyStatus(ctx, id, survey.Status, to); err != nil {
		return entity.Survey{}, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "surveys.status", "surveys", id, entity.LogDetails{"from": survey.Status, "to": to})
	survey.Status = to
	return survey, nil
}

// normalizeOptions checks question options and returns the JSON to persist.
// Choice questions need at least two options with distinct non-empty values; other types store no options.
func normalizeOptions(t entity.QuestionType, raw json.RawMessage) (json.RawMessage, error) {
	if !t.IsChoice() {
		return json.RawMessage("[]"), nil
	}
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return nil, apperr.Validation("options must be a JSON array")
	}

	opts := gjson.ParseBytes(raw)
	if !opts.IsArray() {
		return nil, apperr.Validation("options must be a JSON array")
	}

	seen := make(map[string]struct{})
	for _, o := range opts.Array() {
		value := strings.TrimSpace(o.Get("value").String())
		if value == "" {
			return nil, apperr.Validation("every option needs a value")
		}
		if _, dup := seen[value]; dup {
			return nil, apperr.Validation(fmt.Sprintf("duplicate option value %q", value))
		}
		seen[value] = struct{}{}
	}
	if len(seen) < 2 {
		return nil, apperr.Validation("choice questions need at least two options")
	}
	return raw, nil
}

func validateQuestion(in *QuestionInput) error {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return apperr.Validation("question text is required")
	}
	if !in.Type.Valid() {
		return apperr.Validation("unknown question type")
	}

	opts, err := normalizeOptions(in.Type, in.Options)
	if err != nil {
		return err
	}
	in.Options = opts
	return nil
}

func (s *Surveys) AddQuestion(ctx context.Context, actor entity.Actor, surveyID int64, in QuestionInput) (entity.Question, error) {
	const op = "services.Surveys.AddQuestion"

	if err := validateQuestion(&in); err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.surveyStorage.GetSurveyByID(ctx, surveyID); err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}

	q := entity.Question{
		SurveyID:   surveyID,
		Text:       in.Text,
		Type:       in.Type,
		Options:    in.Options,
		IsRequired: in.IsRequired,
	}
	id, err := s.questionStorage.SaveQuestion(ctx, &q)
	if err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}
	q.ID = id

	s.audit.Action(ctx, actor, "questions.create", "questions", id, entity.LogDetails{"survey_id": surveyID})
	return q, nil
}

func (s *Surveys) UpdateQuestion(ctx context.Context, actor entity.Actor, surveyID, questionID int64, in QuestionInput) (entity.Question, error) {
	const op = "services.Surveys.UpdateQuestion"

	if err := validateQuestion(&in); err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}

	q, err := s.questionStorage.GetQuestionByID(ctx, questionID)
	if err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}
	if q.SurveyID != surveyID {
		return entity.Question{}, fmt.Errorf("%s: %w", op, apperr.NotFound("question not found"))
	}

	q.Text = in.Text
	q.Type = in.Type
	q.Options = in.Options
	q.IsRequired = in.IsRequired

	if err := s.questionStorage.UpdateQuestion(ctx, &q); err != nil {
		return entity.Question{}, fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "questions.update", "questions", questionID, nil)
	return q, nil
}

func (s *Surveys) DeleteQuestion(ctx context.Context, actor entity.Actor, surveyID, questionID int64) error {
	const op = "services.Surveys.DeleteQuestion"

	survey, err := s.surveyStorage.GetSurveyByID(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if survey.Status == entity.SurveyStatusActive {
		n, err := s.questionStorage.CountAnswers(ctx, questionID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if n > 0 {
			return fmt.Errorf("%s: %w", op, ErrQuestionAnswered)
		}
	}

	if err := s.questionStorage.DeleteQuestion(ctx, questionID, surveyID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "questions.delete", "questions", questionID, entity.LogDetails{"survey_id": surveyID})
	return nil
}

// ReorderQuestions sets the question order. ids must list every question of the survey exactly once.
func (s *Surveys) ReorderQuestions(ctx context.Context, actor entity.Actor, surveyID int64, ids []int64) error {
	const op = "services.Surveys.ReorderQuestions"

	questions, err := s.questionStorage.GetQuestionsBySurveyID(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) != len(questions) {
		return fmt.Errorf("%s: %w", op, apperr.Validation("order must list every question of the survey"))
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: %w", op, apperr.Validation("order lists a question twice"))
		}
		seen[id] = struct{}{}
	}
	for _, q := range questions {
		if _, ok := seen[q.ID]; !ok {
			return fmt.Errorf("%s: %w", op, apperr.Validation("order must list every question of the survey"))
		}
	}

	if err := s.questionStorage.ReorderQuestions(ctx, surveyID, ids); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.audit.Action(ctx, actor, "questions.reorder", "surveys", surveyID, nil)
	return nil
}
