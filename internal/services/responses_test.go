package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type responsesFixture struct {
	svc       *Responses
	surveys   *mocks.MockSurveyStorage
	questions *mocks.MockQuestionStorage
	responses *mocks.MockResponseStorage
	now       time.Time
}

func newResponsesFixture(ctrl *gomock.Controller) responsesFixture {
	f := responsesFixture{
		surveys:   mocks.NewMockSurveyStorage(ctrl),
		questions: mocks.NewMockQuestionStorage(ctrl),
		responses: mocks.NewMockResponseStorage(ctrl),
		now:       time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewResponses(utils.Discard(), f.surveys, f.questions, f.responses)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func (f responsesFixture) activeSurvey(cfg entity.SurveyConfig) entity.Survey {
	return entity.Survey{
		ID:        1,
		Status:    entity.SurveyStatusActive,
		StartDate: f.now.AddDate(0, 0, -7),
		EndDate:   f.now.AddDate(0, 0, 7),
		Config:    cfg,
	}
}

var surveyQuestions = []entity.Question{
	{ID: 1, Type: entity.QuestionRating, IsRequired: true},
	{ID: 2, Type: entity.QuestionNPS},
	{ID: 3, Type: entity.QuestionSingleChoice, Options: json.RawMessage(`[{"value":"yes"},{"value":"no"}]`)},
	{ID: 4, Type: entity.QuestionMultipleChoice, Options: json.RawMessage(`[{"value":"a"},{"value":"b"},{"value":"c"}]`)},
	{ID: 5, Type: entity.QuestionText},
}

func TestResponses_SubmitStoresActiveAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)
	appID := int64(7)
	mail := gofakeit.Email()

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{}), nil)
	f.responses.EXPECT().ResponseExists(gomock.Any(), int64(1), normalizeEmail(mail), &appID).Return(false, nil)
	f.questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(surveyQuestions, nil)
	f.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any(), true).DoAndReturn(
		func(_ context.Context, r *entity.Response, _ bool) (int64, error) {
			require.Len(t, r.Answers, 5)
			for _, a := range r.Answers {
				assert.Equal(t, entity.TakeoutActive, a.TakeoutStatus)
			}
			assert.Equal(t, "4", r.Answers[0].Value)
			require.NotNil(t, r.Answers[0].NumericValue)
			assert.Equal(t, 4.0, *r.Answers[0].NumericValue)
			assert.Equal(t, "0", r.Answers[1].Value)
			assert.Equal(t, "yes", r.Answers[2].Value)
			assert.JSONEq(t, `["a","c"]`, r.Answers[3].Value)
			assert.Equal(t, "great", r.Answers[4].Value)
			return 100, nil
		})

	id, err := f.svc.Submit(context.Background(), SubmitInput{
		SurveyID:      1,
		Email:         mail,
		Name:          gofakeit.Name(),
		ApplicationID: &appID,
		Answers: []AnswerInput{
			{QuestionID: 1, Value: "4"},
			{QuestionID: 2, Value: "0"},
			{QuestionID: 3, Value: "yes"},
			{QuestionID: 4, Values: []string{"a", "c", "a"}},
			{QuestionID: 5, Value: "great"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), id)
}

func TestResponses_SubmitDuplicateIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{}), nil)
	f.responses.EXPECT().ResponseExists(gomock.Any(), int64(1), "dup@example.com", (*int64)(nil)).Return(true, nil)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SurveyID: 1,
		Email:    "Dup@Example.com",
		Answers:  []AnswerInput{{QuestionID: 1, Value: "5"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateResponse)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestResponses_SubmitConcurrentDuplicateIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{}), nil)
	f.responses.EXPECT().ResponseExists(gomock.Any(), int64(1), "race@example.com", (*int64)(nil)).Return(false, nil)
	f.questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(surveyQuestions, nil)
	f.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any(), true).
		Return(int64(0), fmt.Errorf("storage.postgres.SaveResponse: %w", repo.ErrDuplicateResponse))

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SurveyID: 1,
		Email:    "race@example.com",
		Answers:  []AnswerInput{{QuestionID: 1, Value: "5"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateResponse)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestResponses_SubmitAllowMultipleSkipsDuplicateCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{AllowMultiple: true}), nil)
	f.questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(surveyQuestions, nil)
	f.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any(), false).Return(int64(2), nil)

	_, err := f.svc.Submit(context.Background(), SubmitInput{
		SurveyID: 1,
		Email:    "again@example.com",
		Answers:  []AnswerInput{{QuestionID: 1, Value: "5"}},
	})
	require.NoError(t, err)
}

func TestResponses_SubmitValidation(t *testing.T) {
	cases := map[string][]AnswerInput{
		"missing required":    {{QuestionID: 2, Value: "5"}},
		"rating out of range": {{QuestionID: 1, Value: "6"}},
		"rating not whole":    {{QuestionID: 1, Value: "3.5"}},
		"nps out of range":    {{QuestionID: 1, Value: "3"}, {QuestionID: 2, Value: "11"}},
		"unknown option":      {{QuestionID: 1, Value: "3"}, {QuestionID: 3, Value: "maybe"}},
		"unknown multi":       {{QuestionID: 1, Value: "3"}, {QuestionID: 4, Values: []string{"a", "z"}}},
		"foreign question":    {{QuestionID: 1, Value: "3"}, {QuestionID: 42, Value: "x"}},
		"answered twice":      {{QuestionID: 1, Value: "3"}, {QuestionID: 1, Value: "4"}},
	}

	for name, answers := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			f := newResponsesFixture(ctrl)
			f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{}), nil)
			f.responses.EXPECT().ResponseExists(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			f.questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(surveyQuestions, nil)

			_, err := f.svc.Submit(context.Background(), SubmitInput{SurveyID: 1, Email: "a@example.com", Answers: answers})
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestResponses_SubmitClosedSurvey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)
	survey := f.activeSurvey(entity.SurveyConfig{})
	survey.EndDate = f.now.Add(-time.Minute)

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(survey, nil)

	_, err := f.svc.Submit(context.Background(), SubmitInput{SurveyID: 1, Email: "a@example.com"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestResponses_AnonymousNeedsPermission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)
	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{}), nil)

	_, err := f.svc.Submit(context.Background(), SubmitInput{SurveyID: 1})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.activeSurvey(entity.SurveyConfig{AllowAnonymous: true}), nil)
	f.questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(surveyQuestions, nil)
	f.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any(), false).Return(int64(3), nil)

	_, err = f.svc.Submit(context.Background(), SubmitInput{SurveyID: 1, Answers: []AnswerInput{{QuestionID: 1, Value: "2"}}})
	assert.NoError(t, err)
}

func TestResponses_CheckDuplicateMirrorsStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newResponsesFixture(ctrl)
	appID := int64(3)

	for _, exists := range []bool{true, false} {
		f.responses.EXPECT().ResponseExists(gomock.Any(), int64(1), "x@example.com", &appID).Return(exists, nil)

		got, err := f.svc.CheckDuplicate(context.Background(), 1, " X@example.com", &appID)
		require.NoError(t, err)
		assert.Equal(t, exists, got)
	}

	_, err := f.svc.CheckDuplicate(context.Background(), 1, "not-an-email", nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
