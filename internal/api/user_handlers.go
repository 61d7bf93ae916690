package api

import (
	"net/http"

	"github.com/vytor/learnpulse/internal/models"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.GetUser(r.Context(), id.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleGetPrivacy(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.PrivacyService.GetOrCreatePrivacySettings(r.Context(), id.UID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

// updatePrivacyRequest carries the caller-editable parts of PrivacySettings.
type updatePrivacyRequest struct {
	DataSharing   models.DataSharing        `json:"data_sharing"`
	DataRetention models.DataRetention      `json:"data_retention"`
	Encryption    models.EncryptionSettings `json:"encryption"`
}

func (s *Server) handleUpdatePrivacy(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req updatePrivacyRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	settings, err := s.PrivacyService.UpdatePrivacySettings(r.Context(), id.UID, models.PrivacySettings{
		DataSharing:   req.DataSharing,
		DataRetention: req.DataRetention,
		Encryption:    req.Encryption,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}
