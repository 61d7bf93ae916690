package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/learnpulse/internal/models"
)

func (s *Server) handleFindMatches(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeWrite(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	var prefs models.StudyPreferences
	if err := decodeAndValidate(w, r, &prefs); err != nil {
		handleError(w, r, err)
		return
	}

	matches, err := s.MatchService.FindStudyMatches(r.Context(), studentID, prefs)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, matches)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if err := s.authorizeRead(r, studentID); err != nil {
		handleError(w, r, err)
		return
	}

	matches, err := s.MatchService.ListStudyMatches(r.Context(), studentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, matches)
}
