package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportRow is one quiz result joined with template and user metadata for the
// reporting view. Missing joins are substituted with "Unknown" placeholders.
type ReportRow struct {
	ResultID      uuid.UUID `json:"result_id"`
	StudentName   string    `json:"student_name"`
	TemplateTitle string    `json:"template_title"`
	Subject       string    `json:"subject"`
	Course        string    `json:"course"`
	Score         float64   `json:"score"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// ReportSummary holds aggregate statistics over a report view.
type ReportSummary struct {
	TotalSubmissions int     `json:"total_submissions"`
	AverageScore     float64 `json:"average_score"`
	PassRate         float64 `json:"pass_rate"`
}

// ReportFilter narrows the reporting scan. Date bounds are inclusive on both
// ends and compare against the result's completion timestamp.
type ReportFilter struct {
	TemplateID *uuid.UUID
	UserID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
