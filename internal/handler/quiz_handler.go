package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/grading"
	"github.com/msc-labs/evaluate-backend/internal/middleware"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
	"github.com/msc-labs/evaluate-backend/internal/validator"
)

// QuizHandler handles quiz taking: fetching the concealed view and submitting
// answers. Authentication is optional so anonymous sessions can take quizzes.
type QuizHandler struct {
	templateService   *service.TemplateService
	submissionService *service.SubmissionService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(templateService *service.TemplateService, submissionService *service.SubmissionService) *QuizHandler {
	return &QuizHandler{templateService: templateService, submissionService: submissionService}
}

// GetQuiz godoc
// GET /api/v1/quiz/:template_id
// Returns the pre-submission view with correct answers and example answers
// stripped.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	view, err := h.templateService.GetQuizView(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgTemplateNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, view)
}

// Submit godoc
// POST /api/v1/quiz/submit
// Scores a full set of answers and persists the result. Free-text answers are
// graded by the oracle; individual grading failures degrade to fallback scores
// rather than failing the submission.
func (h *QuizHandler) Submit(c *gin.Context) {
	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgValidation, gin.H{"fields": fields})
		return
	}

	templateID, err := uuid.Parse(req.TemplateID)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	answers := make([]model.Answer, 0, len(req.Answers))
	for _, in := range req.Answers {
		answers = append(answers, in.ToAnswer())
	}

	var userID *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		userID = &claims.UserID
	}

	result, err := h.submissionService.Submit(c.Request.Context(), templateID, req.SessionID, answers, userID)
	if err != nil {
		var incomplete *grading.IncompleteError
		switch {
		case errors.As(err, &incomplete):
			response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgAllAnswered, gin.H{
				"expected_questions": incomplete.Expected,
				"answered_questions": incomplete.Answered,
			})
		case errors.Is(err, service.ErrTemplateNotFound):
			response.Error(c, http.StatusNotFound, response.MsgTemplateNotFound)
		default:
			response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		}
		return
	}

	response.JSON(c, http.StatusOK, result)
}
