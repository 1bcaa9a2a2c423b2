package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/tidwall/gjson"
)

var ErrDuplicateResponse = repo.ErrDuplicateResponse

type ResponseStorage interface {
	SaveResponse(ctx context.Context, r *entity.Response, unique bool) (int64, error)
	GetResponseByID(ctx context.Context, id int64) (entity.Response, error)
	GetResponsesBySurveyID(ctx context.Context, surveyID int64, page entity.Page) ([]entity.Response, error)
	ResponseExists(ctx context.Context, surveyID int64, email string, applicationID *int64) (bool, error)
}

type Responses struct {
	log             *slog.Logger
	surveyStorage   SurveyStorage
	questionStorage QuestionStorage
	responseStorage ResponseStorage
	now             func() time.Time
}

type AnswerInput struct {
	QuestionID int64
	Value      string
	Values     []string
}

type SubmitInput struct {
	SurveyID      int64
	Email         string
	Name          string
	ApplicationID *int64
	Answers       []AnswerInput
}

func NewResponses(
	log *slog.Logger,
	surveyStorage SurveyStorage,
	questionStorage QuestionStorage,
	responseStorage ResponseStorage,
) *Responses {
	return &Responses{
		log:             log,
		surveyStorage:   surveyStorage,
		questionStorage: questionStorage,
		responseStorage: responseStorage,
		now:             time.Now,
	}
}

// Submit validates and stores a complete response. All answers start in the Active takeout state.
func (r *Responses) Submit(ctx context.Context, in SubmitInput) (int64, error) {
	const op = "services.Responses.Submit"

	log := r.log.With(slog.String("op", op), slog.Int64("survey_id", in.SurveyID))

	survey, err := r.surveyStorage.GetSurveyByID(ctx, in.SurveyID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if !survey.AcceptsResponses(r.now()) {
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("survey is not accepting responses"))
	}

	in.Email = normalizeEmail(in.Email)
	switch {
	case in.Email == "" && !survey.Config.AllowAnonymous:
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("email is required"))
	case in.Email != "" && !validEmail(in.Email):
		return 0, fmt.Errorf("%s: %w", op, apperr.Validation("a valid email is required"))
	}

	unique := in.Email != "" && !survey.Config.AllowMultiple
	if unique {
		exists, err := r.responseStorage.ResponseExists(ctx, in.SurveyID, in.Email, in.ApplicationID)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if exists {
			log.Info("duplicate response rejected")
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicateResponse)
		}
	}

	questions, err := r.questionStorage.GetQuestionsBySurveyID(ctx, in.SurveyID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	answers, err := buildAnswers(questions, in.Answers)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	resp := &entity.Response{
		SurveyID:        in.SurveyID,
		RespondentEmail: in.Email,
		RespondentName:  strings.TrimSpace(in.Name),
		ApplicationID:   in.ApplicationID,
		Answers:         answers,
	}

	id, err := r.responseStorage.SaveResponse(ctx, resp, unique)
	if err != nil {
		if errors.Is(err, ErrDuplicateResponse) {
			log.Info("duplicate response rejected")
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("response submitted", slog.Int64("response_id", id), slog.Int("answers", len(answers)))
	return id, nil
}

// buildAnswers checks every answer against its question and every required question for an answer.
func buildAnswers(questions []entity.Question, in []AnswerInput) ([]entity.QuestionResponse, error) {
	byID := make(map[int64]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	given := make(map[int64]AnswerInput, len(in))
	for _, a := range in {
		if _, ok := byID[a.QuestionID]; !ok {
			return nil, apperr.Validation(fmt.Sprintf("question %d does not belong to the survey", a.QuestionID))
		}
		if _, dup := given[a.QuestionID]; dup {
			return nil, apperr.Validation(fmt.Sprintf("question %d answered twice", a.QuestionID))
		}
		given[a.QuestionID] = a
	}

	answers := make([]entity.QuestionResponse, 0, len(given))
	for _, q := range questions {
		a, ok := given[q.ID]
		if !ok || answerEmpty(a) {
			if q.IsRequired {
				return nil, apperr.Validation(fmt.Sprintf("question %d is required", q.ID))
			}
			continue
		}

		qr, err := answerFor(q, a)
		if err != nil {
			return nil, err
		}
		answers = append(answers, qr)
	}
	return answers, nil
}

func answerEmpty(a AnswerInput) bool {
	return strings.TrimSpace(a.Value) == "" && len(a.Values) == 0
}

func answerFor(q entity.Question, a AnswerInput) (entity.QuestionResponse, error) {
	qr := entity.QuestionResponse{QuestionID: q.ID, TakeoutStatus: entity.TakeoutActive}
	value := strings.TrimSpace(a.Value)

	switch q.Type {
	case entity.QuestionRating, entity.QuestionNPS:
		lo, hi := 1.0, 5.0
		if q.Type == entity.QuestionNPS {
			lo, hi = 0, 10
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || n != float64(int(n)) || n < lo || n > hi {
			return qr, apperr.Validation(fmt.Sprintf("question %d expects a whole number between %g and %g", q.ID, lo, hi))
		}
		qr.Value = strconv.Itoa(int(n))
		qr.NumericValue = &n

	case entity.QuestionSingleChoice:
		if !slices.Contains(optionValues(q.Options), value) {
			return qr, apperr.Validation(fmt.Sprintf("%q is not an option of question %d", value, q.ID))
		}
		qr.Value = value

	case entity.QuestionMultipleChoice:
		picked := a.Values
		if len(picked) == 0 {
			picked = []string{value}
		}
		allowed := optionValues(q.Options)
		clean := make([]string, 0, len(picked))
		for _, v := range picked {
			v = strings.TrimSpace(v)
			if !slices.Contains(allowed, v) {
				return qr, apperr.Validation(fmt.Sprintf("%q is not an option of question %d", v, q.ID))
			}
			if !slices.Contains(clean, v) {
				clean = append(clean, v)
			}
		}
		raw, err := json.Marshal(clean)
		if err != nil {
			return qr, err
		}
		qr.Value = string(raw)

	default:
		qr.Value = value
	}
	return qr, nil
}

func optionValues(options json.RawMessage) []string {
	var values []string
	for _, v := range gjson.GetBytes(options, "#.value").Array() {
		values = append(values, v.String())
	}
	return values
}

// CheckDuplicate reports whether a response already exists for the survey, email and application.
func (r *Responses) CheckDuplicate(ctx context.Context, surveyID int64, email string, applicationID *int64) (bool, error) {
	const op = "services.Responses.CheckDuplicate"

	email = normalizeEmail(email)
	if !validEmail(email) {
		return false, fmt.Errorf("%s: %w", op, apperr.Validation("a valid email is required"))
	}

	exists, err := r.responseStorage.ResponseExists(ctx, surveyID, email, applicationID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (r *Responses) GetResponse(ctx context.Context, id int64) (entity.Response, error) {
	const op = "services.Responses.GetResponse"

	resp, err := r.responseStorage.GetResponseByID(ctx, id)
	if err != nil {
		return entity.Response{}, fmt.Errorf("%s: %w", op, err)
	}
	return resp, nil
}

func (r *Responses) ListResponses(ctx context.Context, surveyID int64, page entity.Page) ([]entity.Response, error) {
	const op = "services.Responses.ListResponses"

	if _, err := r.surveyStorage.GetSurveyByID(ctx, surveyID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	responses, err := r.responseStorage.GetResponsesBySurveyID(ctx, surveyID, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return responses, nil
}
