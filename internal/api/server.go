// Package api serves the processing pipeline over HTTP.
//
// The server exposes one POST endpoint per artifact format plus health and
// version probes. Request bodies carry a score document in JSON; processing
// options arrive as query parameters. Responses set an X-Cache header so
// clients can tell whether an artifact came from the cache.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/fernandoherreradelasheras/verovio/pkg/errors"
	"github.com/fernandoherreradelasheras/verovio/pkg/observability"
	"github.com/fernandoherreradelasheras/verovio/pkg/pipeline"
)

// maxScoreBytes caps the request body size for score uploads.
const maxScoreBytes = 32 << 20

// Server handles HTTP requests against a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a Server. Pass nil for either argument to fall back to a
// cache-less runner or a discarding logger.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, nil)
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{runner: runner, logger: logger}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleArtifact(pipeline.FormatLayout))
		r.Post("/timemap", s.handleArtifact(pipeline.FormatTimemap))
		r.Post("/midi", s.handleArtifact(pipeline.FormatMIDI))
	})
	return r
}

// requestLogger logs one line per request and reports to the API hooks.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration,
		)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
	})
}

// errorResponse is the JSON envelope for failed requests.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps err to an HTTP status and writes the error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", code,
		"error", err,
	)
	writeJSON(w, statusForCode(code), errorResponse{
		Error: errorBody{Code: string(code), Message: apperrors.UserMessage(err)},
	})
}

// statusForCode maps application error codes to HTTP statuses.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidScore,
		apperrors.ErrCodeInvalidOptions,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeElementNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
