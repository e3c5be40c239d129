package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/meeting-fatigue/internal/rest"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	r.HandleFunc("/health", health).Methods("GET")

	// Google integration
	r.HandleFunc("/auth/google", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")

	// Analysis
	r.HandleFunc("/api/analyze", deps.AnalysisHandler.Analyze).Methods("GET")
	r.HandleFunc("/api/categories", deps.AnalysisHandler.Categories).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})).Methods("GET")
}

func health(w http.ResponseWriter, _ *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{Success: true, Message: "Meeting Fatigue Calculator API is running"})
}
