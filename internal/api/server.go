package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vytor/learnpulse/internal/auth"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/services"
)

// Pinger reports whether the document store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	DB       Pinger
	Verifier *auth.Verifier

	UserService       services.UserService
	ProgressService   services.ProgressService
	MetricsService    services.MetricsService
	GapService        services.GapService
	DifficultyService services.DifficultyService
	InsightService    services.InsightService
	ReportService     services.ReportService
	MatchService      services.MatchService
	PrivacyService    services.PrivacyService
	DashboardService  services.DashboardService
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
