package app

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/klokku/meeting-fatigue/internal/config"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const requestIdHeader = "X-Request-Id"

// SetupMiddleware wires the router level middlewares.
func SetupMiddleware(r *mux.Router) {
	r.Use(requestLogging)
}

// WrapHandler adds CORS and per client rate limiting around the router. CORS
// runs outside the router so that preflight requests never hit a route.
func WrapHandler(r http.Handler, cfg config.Application) (http.Handler, error) {
	rateLimit, err := RateLimit(cfg.RateLimit.Rate)
	if err != nil {
		return nil, err
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendUrl},
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept"},
		MaxAge:           86400,
	})
	return c.Handler(rateLimit(r)), nil
}

// RateLimit returns an in-memory ulule limiter keyed by client IP. The rate
// uses the limiter format, e.g. "100-M".
func RateLimit(rate string) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), parsed)
	mw := stdlibmw.NewMiddleware(instance)
	return mw.Handler, nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		started := time.Now()
		requestId := req.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		w.Header().Set(requestIdHeader, requestId)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, req)

		log.WithFields(log.Fields{
			"requestId": requestId,
			"method":    req.Method,
			"path":      req.URL.Path,
			"status":    recorder.status,
			"duration":  time.Since(started),
		}).Debug("Request handled")
	})
}
