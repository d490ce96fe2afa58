package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/msc-labs/evaluate-backend/internal/model"
	"github.com/msc-labs/evaluate-backend/internal/response"
	"github.com/msc-labs/evaluate-backend/internal/service"
)

// ReportHandler handles reporting endpoints (tutor/admin only).
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetAll godoc
// GET /api/v1/reports?template_id=&start_date=&end_date=
// Dates are YYYY-MM-DD; the end date covers the whole day.
func (h *ReportHandler) GetAll(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	rows, summary, err := h.reportService.Build(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"reports": rows,
		"summary": summary,
	})
}

// GetByUser godoc
// GET /api/v1/reports/users/:user_id
func (h *ReportHandler) GetByUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	filter.UserID = &userID
	filter.TemplateID = nil

	rows, summary, err := h.reportService.Build(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.MsgInternal)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"reports": rows,
		"summary": summary,
	})
}

func (h *ReportHandler) parseFilter(c *gin.Context) (model.ReportFilter, bool) {
	var filter model.ReportFilter

	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.MsgInvalidID)
			return filter, false
		}
		filter.TemplateID = &id
	}

	if raw := c.Query("start_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid start_date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.StartDate = &t
	}

	if raw := c.Query("end_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid end_date, expected YYYY-MM-DD")
			return filter, false
		}
		// Inclusive through the end of the day.
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	return filter, true
}
