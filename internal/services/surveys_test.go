package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurveys(ctrl *gomock.Controller) (*Surveys, *mocks.MockSurveyStorage, *mocks.MockQuestionStorage) {
	ss := mocks.NewMockSurveyStorage(ctrl)
	qs := mocks.NewMockQuestionStorage(ctrl)
	return NewSurveys(utils.Discard(), ss, qs, nil), ss, qs
}

func TestSurveys_CreateRejectsEndNotAfterStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, _ := newTestSurveys(ctrl)

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, end := range []time.Time{start, start.Add(-time.Second), start.AddDate(-1, 0, 0)} {
		_, err := s.CreateSurvey(context.Background(), admin, SurveyInput{
			Title:     gofakeit.Sentence(3),
			StartDate: start,
			EndDate:   end,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
}

func TestSurveys_CreateDefaultsToDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, _ := newTestSurveys(ctrl)

	start := time.Now()
	ss.EXPECT().SaveSurvey(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, survey *entity.Survey) (int64, error) {
			assert.Equal(t, entity.SurveyStatusDraft, survey.Status)
			assert.Equal(t, admin.ID, survey.CreatedBy)
			assert.Equal(t, []string{"a@example.com"}, survey.Config.TargetEmails)
			return 11, nil
		})

	id, err := s.CreateSurvey(context.Background(), admin, SurveyInput{
		Title:     "  Q2 satisfaction ",
		StartDate: start,
		EndDate:   start.Add(24 * time.Hour),
		Config:    entity.SurveyConfig{TargetEmails: []string{"A@example.com", "a@example.com ", ""}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestSurveys_SetStatusTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, _ := newTestSurveys(ctrl)
	ctx := context.Background()

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(entity.Survey{ID: 1, Status: entity.SurveyStatusDraft}, nil)
	_, err := s.SetStatus(ctx, admin, 1, entity.SurveyStatusClosed)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(entity.Survey{ID: 1, Status: entity.SurveyStatusClosed}, nil)
	ss.EXPECT().UpdateSurveyStatus(gomock.Any(), int64(1), entity.SurveyStatusClosed, entity.SurveyStatusActive).Return(nil)
	survey, err := s.SetStatus(ctx, admin, 1, entity.SurveyStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.SurveyStatusActive, survey.Status)
}

func TestSurveys_DeleteOnlyDraftOrArchived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, _ := newTestSurveys(ctrl)
	ctx := context.Background()

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(2)).Return(entity.Survey{ID: 2, Status: entity.SurveyStatusActive}, nil)
	err := s.DeleteSurvey(ctx, admin, 2)
	assert.ErrorIs(t, err, ErrSurveyNotEditable)

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(3)).Return(entity.Survey{ID: 3, Status: entity.SurveyStatusArchived}, nil)
	ss.EXPECT().DeleteSurvey(gomock.Any(), int64(3)).Return(nil)
	assert.NoError(t, s.DeleteSurvey(ctx, admin, 3))
}

func TestSurveys_AddQuestionValidatesOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, qs := newTestSurveys(ctrl)
	ctx := context.Background()

	bad := []json.RawMessage{
		nil,
		json.RawMessage(`{"value":"a"}`),
		json.RawMessage(`[{"value":"a"}]`),
		json.RawMessage(`[{"value":"a"},{"value":"a"}]`),
		json.RawMessage(`[{"value":"a"},{"label":"no value"}]`),
	}
	for _, opts := range bad {
		_, err := s.AddQuestion(ctx, admin, 1, QuestionInput{Text: "Pick", Type: entity.QuestionSingleChoice, Options: opts})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), string(opts))
	}

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(entity.Survey{ID: 1}, nil).Times(2)
	qs.EXPECT().SaveQuestion(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q *entity.Question) (int64, error) {
			assert.JSONEq(t, `[]`, string(q.Options))
			return 5, nil
		})
	q, err := s.AddQuestion(ctx, admin, 1, QuestionInput{Text: "Rate us", Type: entity.QuestionRating, Options: json.RawMessage(`[1,2]`)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), q.ID)

	qs.EXPECT().SaveQuestion(gomock.Any(), gomock.Any()).Return(int64(6), nil)
	_, err = s.AddQuestion(ctx, admin, 1, QuestionInput{
		Text:    "Pick",
		Type:    entity.QuestionMultipleChoice,
		Options: json.RawMessage(`[{"value":"a","label":"A"},{"value":"b","label":"B"}]`),
	})
	require.NoError(t, err)
}

func TestSurveys_DeleteAnsweredQuestionOfActiveSurvey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, qs := newTestSurveys(ctrl)

	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(entity.Survey{ID: 1, Status: entity.SurveyStatusActive}, nil)
	qs.EXPECT().CountAnswers(gomock.Any(), int64(9)).Return(3, nil)

	err := s.DeleteQuestion(context.Background(), admin, 1, 9)
	assert.ErrorIs(t, err, ErrQuestionAnswered)
}

func TestSurveys_ReorderRequiresEveryQuestion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _, qs := newTestSurveys(ctrl)
	ctx := context.Background()
	questions := []entity.Question{{ID: 1}, {ID: 2}, {ID: 3}}

	qs.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(questions, nil).Times(3)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(s.ReorderQuestions(ctx, admin, 1, []int64{1, 2})))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(s.ReorderQuestions(ctx, admin, 1, []int64{1, 1, 2})))

	qs.EXPECT().ReorderQuestions(gomock.Any(), int64(1), []int64{3, 1, 2}).Return(nil)
	assert.NoError(t, s.ReorderQuestions(ctx, admin, 1, []int64{3, 1, 2}))
}

func TestSurveys_PublicSurveyMustBeOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, ss, qs := newTestSurveys(ctrl)
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	open := entity.Survey{
		ID: 1, Status: entity.SurveyStatusActive,
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1),
		Config: entity.SurveyConfig{TargetEmails: []string{"x@example.com"}},
	}
	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(open, nil)
	qs.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return([]entity.Question{{ID: 1}}, nil)

	survey, err := s.GetPublicSurvey(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, survey.Config.TargetEmails)
	assert.Len(t, survey.Questions, 1)

	closed := open
	closed.Status = entity.SurveyStatusClosed
	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(closed, nil)
	qs.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(1)).Return(nil, nil)

	_, err = s.GetPublicSurvey(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSurveyNotOpen)
}
