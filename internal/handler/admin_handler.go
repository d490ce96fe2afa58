package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
)

// AdminHandler handles admin-only endpoints.
type AdminHandler struct {
	auditService *service.AuditService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(auditService *service.AuditService) *AdminHandler {
	return &AdminHandler{auditService: auditService}
}

// ListLogs godoc
// GET /api/v1/admin/logs?limit=
func (h *AdminHandler) ListLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	logs, err := h.auditService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"logs": logs})
}
