package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
)

type generateReportRequest struct {
	Start *time.Time `json:"start" validate:"required"`
	End   *time.Time `json:"end" validate:"required"`
}

func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	var req generateReportRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	report, err := s.ReportService.GenerateStudentReport(r.Context(), studentID, models.ReportPeriod{Start: *req.Start, End: *req.End})
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("report generated: report_id=%s", report.ReportID)
	writeJSON(w, r, http.StatusCreated, report)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	reports, err := s.ReportService.ListReports(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.ReportService.GetReport(r.Context(), chi.URLParam(r, "reportID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.authorizeRead(r, report.StudentID); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}
