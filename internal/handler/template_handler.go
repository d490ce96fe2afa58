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
	"github.com/msc-labs/evaluate-backend/internal/validator"
)

// TemplateHandler handles template authoring endpoints (tutor/admin only).
type TemplateHandler struct {
	templateService *service.TemplateService
	auditService    *service.AuditService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService *service.TemplateService, auditService *service.AuditService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService, auditService: auditService}
}

// Create godoc
// POST /api/v1/templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req model.CreateTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgValidation, gin.H{"fields": fields})
		return
	}

	var createdBy *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		createdBy = &claims.UserID
	}

	template, err := h.templateService.Create(c.Request.Context(), req, createdBy)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			response.ErrorWithDetails(c, http.StatusBadRequest, response.MsgValidation, gin.H{"detail": err.Error()})
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{
		"template_id": template.ID,
		"message":     "Template created successfully",
	})
}

// List godoc
// GET /api/v1/templates?subject=&course=
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templateService.List(c.Request.Context(), c.Query("subject"), c.Query("course"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}
	if templates == nil {
		templates = []model.Template{}
	}
	response.JSON(c, http.StatusOK, gin.H{"templates": templates})
}

// Get godoc
// GET /api/v1/templates/:template_id
// Returns the full template including correct answers and example answers.
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	template, err := h.templateService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgTemplateNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, template)
}

// Delete godoc
// DELETE /api/v1/templates/:template_id
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("template_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgTemplateNotFound)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	if claims := middleware.GetClaims(c); claims != nil {
		h.auditService.Record(c.Request.Context(), claims.UserID, "template.delete", id.String(), "")
	}

	response.JSON(c, http.StatusOK, gin.H{"message": "Template deleted"})
}
