package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/models"
)

func (s *Server) handleGetMetrics(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.MetricsService.GetPerformanceMetrics(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) handleRecomputeMetrics(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	m, err := s.MetricsService.RecomputeMetrics(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) handleIdentifyGaps(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	gaps, err := s.GapService.IdentifyLearningGaps(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, gaps)
}

func (s *Server) handleListGaps(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	gaps, err := s.GapService.ListLearningGaps(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, gaps)
}

// handleDifficulty serves GET .../difficulty?subject=math&current=beginner.
func (s *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	q := r.URL.Query()
	subject := strings.TrimSpace(q.Get("subject"))
	if subject == "" {
		handleError(w, r, errors.NewValidationError("subject", "is required"))
		return
	}
	current := models.Difficulty(strings.ToLower(q.Get("current")))
	if current == "" {
		current = models.Beginner
	}

	advice, err := s.DifficultyService.Advise(r.Context(), studentID, subject, current)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, advice)
}

func (s *Server) handleGenerateInsights(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	list, err := s.InsightService.GenerateInsights(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, list)
}

func (s *Server) handleGetInsights(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	batch, err := s.InsightService.GetInsights(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, batch)
}
