package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/middleware"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
)

// ResultHandler handles stored-result reads and administrative deletes.
type ResultHandler struct {
	resultService *service.ResultService
	auditService  *service.AuditService
}

// NewResultHandler creates a new ResultHandler.
func NewResultHandler(resultService *service.ResultService, auditService *service.AuditService) *ResultHandler {
	return &ResultHandler{resultService: resultService, auditService: auditService}
}

// ListBySession godoc
// GET /api/v1/results?session_id=...
// Returns the session's submission history, newest first.
func (h *ResultHandler) ListBySession(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		response.Error(c, http.StatusBadRequest, "session_id is required")
		return
	}

	results, err := h.resultService.ListBySession(c.Request.Context(), sessionID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	if results == nil {
		results = []model.Result{}
	}

	response.JSON(c, http.StatusOK, gin.H{"results": results})
}

// Get godoc
// GET /api/v1/results/:result_id
// Returns one result enriched with its template's questions.
func (h *ResultHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	result, err := h.resultService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgResultNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Delete godoc
// DELETE /api/v1/results/:result_id (admin only)
func (h *ResultHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("result_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	if err := h.resultService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgResultNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	if claims := middleware.GetClaims(c); claims != nil {
		h.auditService.Record(c.Request.Context(), claims.UserID, "result.delete", id.String(), "")
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Result deleted"})
}
