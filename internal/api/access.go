package api

import (
	"net/http"

	"github.com/vytor/learnpulse/internal/auth"
	"github.com/vytor/learnpulse/internal/errors"
)

func identity(r *http.Request) (*auth.Identity, error) {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		return nil, errors.NewUnauthorizedError("not authenticated")
	}
	return id, nil
}

// authorizeRead lets students read their own data and teachers read any
// student who has not withdrawn teacher access.
func (s *Server) authorizeRead(r *http.Request, studentID string) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	if !id.CanRead(studentID) {
		return errors.NewForbiddenError("you may only access your own data")
	}
	if id.UID == studentID {
		return nil
	}

	settings, err := s.PrivacyService.GetOrCreatePrivacySettings(r.Context(), studentID)
	if err != nil {
		return err
	}
	if !settings.DataSharing.TeacherAccess {
		return errors.NewForbiddenError("student has not shared data with teachers")
	}
	return nil
}

// authorizeWrite only lets students change their own documents.
func (s *Server) authorizeWrite(r *http.Request, studentID string) error {
	id, err := identity(r)
	if err != nil {
		return err
	}
	if !id.CanWrite(studentID) {
		return errors.NewForbiddenError("you may only change your own data")
	}
	return nil
}
