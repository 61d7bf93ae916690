package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
)

// recordProgressRequest is the body of POST /api/progress. The student is
// always the caller.
type recordProgressRequest struct {
	Subject    string            `json:"subject" validate:"required"`
	Topic      string            `json:"topic" validate:"required"`
	Score      float64           `json:"score"`
	TimeSpent  float64           `json:"time_spent" validate:"gte=0"`
	Difficulty models.Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	Attempts   int               `json:"attempts" validate:"gte=1"`
}

func (s *Server) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := identity(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req recordProgressRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	in := models.NewProgressEvent{
		StudentID:  id.UID,
		Subject:    req.Subject,
		Topic:      req.Topic,
		Score:      req.Score,
		TimeSpent:  req.TimeSpent,
		Difficulty: req.Difficulty,
		Attempts:   req.Attempts,
	}
	if err := validateStruct(in); err != nil {
		handleError(w, r, err)
		return
	}

	event, err := s.ProgressService.RecordProgress(r.Context(), in)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("progress recorded: id=%s", event.ID)
	writeJSON(w, r, http.StatusCreated, event)
}

func (s *Server) handleStudentProgress(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	events, err := s.ProgressService.GetStudentProgress(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, events)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	d, err := s.DashboardService.Get(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, d)
}
