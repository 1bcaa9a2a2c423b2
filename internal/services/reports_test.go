package services

import (
	"context"
	"testing"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReports_SummaryGroupsDistributions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ss := mocks.NewMockSurveyStorage(ctrl)
	rs := mocks.NewMockReportStorage(ctrl)
	r := NewReports(utils.Discard(), ss, rs)

	avg := 4.0
	ss.EXPECT().GetSurveyByID(gomock.Any(), int64(1)).Return(entity.Survey{ID: 1, Title: "CSI"}, nil)
	rs.EXPECT().CountResponses(gomock.Any(), int64(1)).Return(3, nil)
	rs.EXPECT().SurveyQuestionStats(gomock.Any(), int64(1)).Return([]entity.QuestionStats{
		{QuestionID: 1, Type: entity.QuestionRating, AnswerCount: 2, Average: &avg, TakenOutCount: 1},
		{QuestionID: 2, Type: entity.QuestionMultipleChoice, AnswerCount: 3},
	}, nil)
	rs.EXPECT().OptionDistribution(gomock.Any(), int64(1)).Return([]entity.OptionCount{
		{QuestionID: 1, Value: "3", Count: 1},
		{QuestionID: 1, Value: "5", Count: 1},
		{QuestionID: 2, Value: `["a","b"]`, Count: 2},
		{QuestionID: 2, Value: `["b"]`, Count: 1},
	}, nil)

	summary, err := r.Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ResponseCount)
	require.Len(t, summary.Questions, 2)
	assert.Len(t, summary.Questions[0].Distribution, 2)
	assert.Equal(t, 1, summary.Questions[0].TakenOutCount)
	assert.Equal(t, []entity.OptionCount{{Value: "a", Count: 2}, {Value: "b", Count: 3}}, summary.Questions[1].Distribution)
}

func TestReports_ExportUnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := NewReports(utils.Discard(), mocks.NewMockSurveyStorage(ctrl), mocks.NewMockReportStorage(ctrl))

	_, err := r.Export(context.Background(), 1, "docx")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
