package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/email"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type operationsFixture struct {
	svc         *Operations
	ops         *mocks.MockOperationStorage
	surveys     *mocks.MockSurveyStorage
	respondents *mocks.MockRespondentProvider
	mailer      *mocks.MockMailer
	now         time.Time
}

func newOperationsFixture(t *testing.T, ctrl *gomock.Controller) operationsFixture {
	t.Helper()
	templates, err := email.LoadTemplates()
	require.NoError(t, err)

	f := operationsFixture{
		ops:         mocks.NewMockOperationStorage(ctrl),
		surveys:     mocks.NewMockSurveyStorage(ctrl),
		respondents: mocks.NewMockRespondentProvider(ctrl),
		mailer:      mocks.NewMockMailer(ctrl),
		now:         time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
	}
	f.svc = NewOperations(utils.Discard(), f.ops, f.surveys, f.respondents, f.mailer, templates, nil,
		OperationsConfig{BaseURL: "http://portal", MaxRetries: 2, BatchLimit: 10})
	f.svc.now = func() time.Time { return f.now }
	f.ops.EXPECT().ReclaimStaleOperations(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
	return f
}

func (f operationsFixture) survey() entity.Survey {
	return entity.Survey{
		ID:        1,
		Title:     "Ops CSI",
		Status:    entity.SurveyStatusActive,
		StartDate: f.now.AddDate(0, 0, -1),
		EndDate:   f.now.AddDate(0, 1, 0),
		Config:    entity.SurveyConfig{TargetEmails: []string{"a@example.com", "b@example.com", "c@example.com"}},
	}
}

func okResults(messages []email.Message) []email.Result {
	results := make([]email.Result, len(messages))
	for i, m := range messages {
		results[i] = email.Result{To: m.To}
	}
	return results
}

func TestOperations_BlastAdvancesRecurringOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)
	due := entity.ScheduledOperation{
		ID: 5, SurveyID: 1, Type: entity.OperationBlast, Frequency: entity.FrequencyWeekly,
		Subject: "Please answer", NextExecutionAt: f.now.Add(-time.Minute), Status: entity.OperationScheduled,
	}

	f.ops.EXPECT().DueOperations(gomock.Any(), f.now, 10).Return([]entity.ScheduledOperation{due}, nil)
	f.ops.EXPECT().MarkOperationRunning(gomock.Any(), int64(5)).Return(nil)
	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.survey(), nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Len(3)).DoAndReturn(
		func(_ context.Context, messages []email.Message) ([]email.Result, error) {
			assert.Contains(t, messages[0].HTMLBody, "http://portal/ui/?survey=1")
			return okResults(messages), nil
		})
	f.ops.EXPECT().SaveEmailLog(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.ops.EXPECT().FinishOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *entity.ScheduledOperation) error {
			assert.Equal(t, entity.OperationScheduled, o.Status)
			assert.Equal(t, due.NextExecutionAt.AddDate(0, 0, 7), o.NextExecutionAt)
			require.NotNil(t, o.LastExecutedAt)
			assert.Equal(t, f.now, *o.LastExecutedAt)
			assert.Zero(t, o.RetryCount)
			return nil
		})

	n, err := f.svc.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOperations_ReminderSkipsRespondents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)
	due := entity.ScheduledOperation{
		ID: 6, SurveyID: 1, Type: entity.OperationReminder, Frequency: entity.FrequencyOnce,
		Subject: "Reminder", NextExecutionAt: f.now, Status: entity.OperationScheduled,
	}

	f.ops.EXPECT().DueOperations(gomock.Any(), f.now, 10).Return([]entity.ScheduledOperation{due}, nil)
	f.ops.EXPECT().MarkOperationRunning(gomock.Any(), int64(6)).Return(nil)
	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.survey(), nil)
	f.respondents.EXPECT().RespondentEmails(gomock.Any(), int64(1)).Return([]string{"b@example.com"}, nil)
	f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, messages []email.Message) ([]email.Result, error) {
			var to []string
			for _, m := range messages {
				to = append(to, m.To)
			}
			assert.Equal(t, []string{"a@example.com", "c@example.com"}, to)
			return okResults(messages), nil
		})
	f.ops.EXPECT().SaveEmailLog(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.ops.EXPECT().FinishOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *entity.ScheduledOperation) error {
			assert.Equal(t, entity.OperationCompleted, o.Status)
			return nil
		})

	_, err := f.svc.ProcessDue(context.Background())
	require.NoError(t, err)
}

func TestOperations_FailuresRetryThenFail(t *testing.T) {
	for _, tc := range []struct {
		retries int
		want    entity.OperationStatus
	}{
		{retries: 0, want: entity.OperationScheduled},
		{retries: 1, want: entity.OperationFailed},
	} {
		ctrl := gomock.NewController(t)

		f := newOperationsFixture(t, ctrl)
		due := entity.ScheduledOperation{
			ID: 7, SurveyID: 1, Type: entity.OperationBlast, Frequency: entity.FrequencyDaily,
			Subject: "Hi", NextExecutionAt: f.now, Status: entity.OperationScheduled, RetryCount: tc.retries,
		}

		f.ops.EXPECT().DueOperations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.ScheduledOperation{due}, nil)
		f.ops.EXPECT().MarkOperationRunning(gomock.Any(), int64(7)).Return(nil)
		f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.survey(), nil)
		f.mailer.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, messages []email.Message) ([]email.Result, error) {
				results := make([]email.Result, len(messages))
				for i, m := range messages {
					results[i] = email.Result{To: m.To, Err: errors.New("relay denied")}
				}
				return results, nil
			})
		f.ops.EXPECT().SaveEmailLog(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, l *entity.EmailLog) error {
				assert.Equal(t, entity.EmailFailed, l.Status)
				return nil
			}).Times(3)
		f.ops.EXPECT().FinishOperation(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, o *entity.ScheduledOperation) error {
				assert.Equal(t, tc.want, o.Status)
				assert.Equal(t, tc.retries+1, o.RetryCount)
				assert.Equal(t, f.now, o.NextExecutionAt)
				assert.Contains(t, o.LastError, "relay denied")
				return nil
			})

		_, err := f.svc.ProcessDue(context.Background())
		require.NoError(t, err)
		ctrl.Finish()
	}
}

func TestOperations_EndedSurveyCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)
	survey := f.survey()
	survey.Status = entity.SurveyStatusClosed
	due := entity.ScheduledOperation{ID: 8, SurveyID: 1, Type: entity.OperationReminder, Frequency: entity.FrequencyDaily}

	f.ops.EXPECT().DueOperations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.ScheduledOperation{due}, nil)
	f.ops.EXPECT().MarkOperationRunning(gomock.Any(), int64(8)).Return(nil)
	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(survey, nil)
	f.ops.EXPECT().FinishOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *entity.ScheduledOperation) error {
			assert.Equal(t, entity.OperationCompleted, o.Status)
			return nil
		})

	_, err := f.svc.ProcessDue(context.Background())
	require.NoError(t, err)
}

func TestOperations_ClaimedElsewhereIsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)
	due := entity.ScheduledOperation{ID: 9, SurveyID: 1}

	f.ops.EXPECT().DueOperations(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.ScheduledOperation{due}, nil)
	f.ops.EXPECT().MarkOperationRunning(gomock.Any(), int64(9)).Return(repo.ErrStatusChanged)

	n, err := f.svc.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOperations_StaleRunningOperationsAreReclaimed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ops := mocks.NewMockOperationStorage(ctrl)
	svc := NewOperations(utils.Discard(), ops, nil, nil, nil, nil, nil,
		OperationsConfig{MaxRetries: 3, StaleAfter: 10 * time.Minute})
	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	gomock.InOrder(
		ops.EXPECT().ReclaimStaleOperations(gomock.Any(), now.Add(-10*time.Minute), 3).Return(int64(2), nil),
		ops.EXPECT().DueOperations(gomock.Any(), now, 20).Return(nil, nil),
	)

	n, err := svc.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOperations_ReclaimFailureDoesNotBlockDueOperations(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ops := mocks.NewMockOperationStorage(ctrl)
	svc := NewOperations(utils.Discard(), ops, nil, nil, nil, nil, nil, OperationsConfig{})

	ops.EXPECT().ReclaimStaleOperations(gomock.Any(), gomock.Any(), 3).Return(int64(0), errors.New("connection reset"))
	ops.EXPECT().DueOperations(gomock.Any(), gomock.Any(), 20).Return(nil, nil)

	_, err := svc.ProcessDue(context.Background())
	require.NoError(t, err)
}

func TestOperations_CreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)
	ctx := context.Background()
	valid := OperationInput{
		SurveyID: 1, Type: entity.OperationBlast, Frequency: entity.FrequencyOnce,
		Subject: "Survey", FirstRunAt: f.now.Add(time.Hour),
	}

	past := valid
	past.FirstRunAt = f.now.Add(-time.Hour)
	_, err := f.svc.Create(ctx, admin, past)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	badTemplate := valid
	badTemplate.TemplateBody = "{{.Name"
	_, err = f.svc.Create(ctx, admin, badTemplate)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	badType := valid
	badType.Type = "sms"
	_, err = f.svc.Create(ctx, admin, badType)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	f.surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(f.survey(), nil)
	f.ops.EXPECT().SaveOperation(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, o *entity.ScheduledOperation) (int64, error) {
			assert.Equal(t, entity.OperationScheduled, o.Status)
			assert.Equal(t, valid.FirstRunAt, o.NextExecutionAt)
			return 12, nil
		})
	so, err := f.svc.Create(ctx, admin, valid)
	require.NoError(t, err)
	assert.Equal(t, int64(12), so.ID)
}

func TestOperations_CancelFinishedIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newOperationsFixture(t, ctrl)

	f.ops.EXPECT().GetOperationByID(gomock.Any(), int64(3)).Return(entity.ScheduledOperation{ID: 3, Status: entity.OperationCompleted}, nil)
	f.ops.EXPECT().CancelOperation(gomock.Any(), int64(3)).Return(repo.ErrStatusChanged)

	err := f.svc.Cancel(context.Background(), admin, 3)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
