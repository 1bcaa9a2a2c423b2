package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type SurveysHandler struct {
	surveys *services.Surveys
}

type SurveyRequest struct {
	Title       string              `json:"title" binding:"required,max=300"`
	Description string              `json:"description" binding:"max=5000"`
	StartDate   time.Time           `json:"start_date" binding:"required"`
	EndDate     time.Time           `json:"end_date" binding:"required"`
	Config      entity.SurveyConfig `json:"config"`
}

type SetStatusRequest struct {
	Status entity.SurveyStatus `json:"status" binding:"required,survey_status"`
}

type QuestionRequest struct {
	Text       string              `json:"text" binding:"required,max=1000"`
	Type       entity.QuestionType `json:"type" binding:"required,question_type"`
	Options    json.RawMessage     `json:"options"`
	IsRequired bool                `json:"is_required"`
}

type ReorderRequest struct {
	QuestionIDs []int64 `json:"question_ids" binding:"required,min=1,dive,gt=0"`
}

func NewSurveysHandler(surveys *services.Surveys) *SurveysHandler {
	return &SurveysHandler{surveys: surveys}
}

func (r SurveyRequest) input() services.SurveyInput {
	return services.SurveyInput{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Config:      r.Config,
	}
}

func (r QuestionRequest) input() services.QuestionInput {
	return services.QuestionInput{
		Text:       r.Text,
		Type:       r.Type,
		Options:    r.Options,
		IsRequired: r.IsRequired,
	}
}

func (h *SurveysHandler) Create(c *gin.Context) {
	var req SurveyRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := h.surveys.CreateSurvey(c.Request.Context(), actor, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"id": id})
}

func (h *SurveysHandler) List(c *gin.Context) {
	status := entity.SurveyStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		fail(c, apperr.Validation("unknown survey status"))
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	surveys, err := h.surveys.ListSurveys(c.Request.Context(), status, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, surveys)
}

func (h *SurveysHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveys.GetSurvey(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, survey)
}

// GetPublic serves an open survey to respondents.
func (h *SurveysHandler) GetPublic(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	survey, err := h.surveys.GetPublicSurvey(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, survey)
}

func (h *SurveysHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req SurveyRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	survey, err := h.surveys.UpdateSurvey(c.Request.Context(), actor, id, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, survey)
}

func (h *SurveysHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.surveys.DeleteSurvey(c.Request.Context(), actor, id); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id})
}

func (h *SurveysHandler) SetStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req SetStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	survey, err := h.surveys.SetStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, survey)
}

func (h *SurveysHandler) AddQuestion(c *gin.Context) {
	surveyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	question, err := h.surveys.AddQuestion(c.Request.Context(), actor, surveyID, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, question)
}

func (h *SurveysHandler) UpdateQuestion(c *gin.Context) {
	surveyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := idParam(c, "qid")
	if !ok {
		return
	}
	var req QuestionRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	question, err := h.surveys.UpdateQuestion(c.Request.Context(), actor, surveyID, questionID, req.input())
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, question)
}

func (h *SurveysHandler) DeleteQuestion(c *gin.Context) {
	surveyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := idParam(c, "qid")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.surveys.DeleteQuestion(c.Request.Context(), actor, surveyID, questionID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": questionID})
}

func (h *SurveysHandler) ReorderQuestions(c *gin.Context) {
	surveyID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req ReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.surveys.ReorderQuestions(c.Request.Context(), actor, surveyID, req.QuestionIDs); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"question_ids": req.QuestionIDs})
}
