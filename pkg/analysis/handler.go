package analysis

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/klokku/meeting-fatigue/internal/config"
	"github.com/klokku/meeting-fatigue/internal/rest"
	"github.com/klokku/meeting-fatigue/pkg/analytics"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Internal server error"

type Renderer interface {
	Render(result analytics.AnalysisResult) (string, error)
}

type Handler struct {
	service     Service
	csvRenderer Renderer
	defaultDays int
	maxDays     int
	production  bool
}

func NewHandler(service Service, csvRenderer Renderer, cfg config.Application) *Handler {
	return &Handler{
		service:     service,
		csvRenderer: csvRenderer,
		defaultDays: cfg.Analysis.DefaultDays,
		maxDays:     cfg.Analysis.MaxDays,
		production:  cfg.IsProduction(),
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	token := rest.BearerToken(r)
	if token == "" {
		rest.Failure(w, http.StatusUnauthorized, "Missing or invalid authorization token")
		return
	}
	days := h.parseDays(r.URL.Query().Get("days"))

	result, err := h.service.Analyze(r.Context(), token, days)
	if err != nil {
		if errors.Is(err, ErrMissingToken) {
			rest.Failure(w, http.StatusUnauthorized, "Missing or invalid authorization token")
			return
		}
		log.Errorf("Analysis error: %v", err)
		message := err.Error()
		if h.production {
			message = genericErrorMessage
		}
		rest.Failure(w, http.StatusInternalServerError, message)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.Render(result.Analysis)
		if err != nil {
			rest.Failure(w, http.StatusInternalServerError, genericErrorMessage)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="meeting-fatigue.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	rest.Success(w, result.Message, ToAnalysisDTO(result))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	rest.Success(w, "", categoriesToDTO())
}

// parseDays falls back to the default for missing, malformed or non-positive
// values and caps the window at the configured maximum.
func (h *Handler) parseDays(value string) int {
	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		return h.defaultDays
	}
	if h.maxDays > 0 && days > h.maxDays {
		return h.maxDays
	}
	return days
}
