package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/me", s.handleMe)
		r.Get("/privacy", s.handleGetPrivacy)
		r.Put("/privacy", s.handleUpdatePrivacy)

		r.Post("/progress", s.handleRecordProgress)
		r.Get("/reports/{reportID}", s.handleGetReport)

		r.Route("/students/{studentID}", func(r chi.Router) {
			r.Get("/progress", s.handleStudentProgress)
			r.Get("/metrics", s.handleGetMetrics)
			r.Post("/metrics/recompute", s.handleRecomputeMetrics)
			r.Post("/gaps/identify", s.handleIdentifyGaps)
			r.Get("/gaps", s.handleListGaps)
			r.Get("/difficulty", s.handleDifficulty)
			r.Post("/insights", s.handleGenerateInsights)
			r.Get("/insights", s.handleGetInsights)
			r.Post("/reports", s.handleGenerateReport)
			r.Get("/reports", s.handleListReports)
			r.Post("/matches", s.handleFindMatches)
			r.Get("/matches", s.handleListMatches)
			r.Get("/dashboard", s.handleDashboard)
		})
	})

	return r
}
