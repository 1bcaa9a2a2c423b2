package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type ResponsesHandler struct {
	responses *services.Responses
}

type AnswerRequest struct {
	QuestionID int64    `json:"question_id" binding:"required,gt=0"`
	Value      string   `json:"value" binding:"max=5000"`
	Values     []string `json:"values" binding:"max=50"`
}

type SubmitResponseRequest struct {
	SurveyID      int64           `json:"survey_id" binding:"required,gt=0"`
	Email         string          `json:"email" binding:"omitempty,email"`
	Name          string          `json:"name" binding:"max=200"`
	ApplicationID *int64          `json:"application_id" binding:"omitempty,gt=0"`
	Answers       []AnswerRequest `json:"answers" binding:"required,min=1,dive"`
}

func NewResponsesHandler(responses *services.Responses) *ResponsesHandler {
	return &ResponsesHandler{responses: responses}
}

func (h *ResponsesHandler) Submit(c *gin.Context) {
	var req SubmitResponseRequest
	if !bindJSON(c, &req) {
		return
	}

	answers := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, services.AnswerInput{QuestionID: a.QuestionID, Value: a.Value, Values: a.Values})
	}

	id, err := h.responses.Submit(c.Request.Context(), services.SubmitInput{
		SurveyID:      req.SurveyID,
		Email:         req.Email,
		Name:          req.Name,
		ApplicationID: req.ApplicationID,
		Answers:       answers,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"id": id})
}

func (h *ResponsesHandler) CheckDuplicate(c *gin.Context) {
	surveyID, ok := requiredID(c, "survey_id")
	if !ok {
		return
	}
	applicationID, ok := optionalID(c, "application_id")
	if !ok {
		return
	}

	duplicate, err := h.responses.CheckDuplicate(c.Request.Context(), surveyID, c.Query("email"), applicationID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"duplicate": duplicate})
}

func (h *ResponsesHandler) List(c *gin.Context) {
	surveyID, ok := requiredID(c, "survey_id")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	responses, err := h.responses.ListResponses(c.Request.Context(), surveyID, page)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, responses)
}

func (h *ResponsesHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	response, err := h.responses.GetResponse(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, response)
}
